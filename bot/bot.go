package bot

import (
	"context"
	"errors"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"food-details/config"
	"food-details/lang"
	"food-details/services"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// sender is the part of *tgbotapi.BotAPI the screens need.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type Bot struct {
	api      *tgbotapi.BotAPI
	out      sender
	cfg      *config.Config
	backend  services.Backend
	sessions services.SessionStore

	screenLocks sync.Map // map[services.SessionKey]*sync.Mutex
}

func New(cfg *config.Config, backend services.Backend, sessions services.SessionStore) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		return nil, err
	}
	b := newBot(cfg, api, backend, sessions)
	b.api = api
	return b, nil
}

func newBot(cfg *config.Config, out sender, backend services.Backend, sessions services.SessionStore) *Bot {
	return &Bot{
		out:      out,
		cfg:      cfg,
		backend:  backend,
		sessions: sessions,
	}
}

// cardMarkup converts FoodCard.Buttons to a Telegram inline keyboard.
func cardMarkup(c services.FoodCard) *tgbotapi.InlineKeyboardMarkup {
	if len(c.Buttons) == 0 {
		return nil
	}
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, row := range c.Buttons {
		var btns []tgbotapi.InlineKeyboardButton
		for _, btn := range row {
			btns = append(btns, tgbotapi.NewInlineKeyboardButtonData(btn.Text, btn.CallbackData))
		}
		rows = append(rows, btns)
	}
	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &kb
}

// lockScreen serializes button presses on the same screen and returns an unlock function.
func (b *Bot) lockScreen(key services.SessionKey) func() {
	v, _ := b.screenLocks.LoadOrStore(key, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// requestContext bounds one screen action: a load or toggle is one round trip,
// an order may need a few.
func (b *Bot) requestContext() (context.Context, context.CancelFunc) {
	timeout := b.cfg.API.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return context.WithTimeout(context.Background(), 3*timeout)
}

// pruneSessions drops screens idle for longer than SessionTTL along with their locks.
func (b *Bot) pruneSessions(now time.Time) {
	ttl := b.cfg.Screen.SessionTTL
	if ttl <= 0 {
		return
	}
	ctx, cancel := b.requestContext()
	defer cancel()

	keys, err := b.sessions.Prune(ctx, now.Add(-ttl))
	if err != nil {
		log.Printf("prune sessions: %v", err)
		return
	}
	for _, key := range keys {
		b.screenLocks.Delete(key)
	}
	if len(keys) > 0 {
		log.Printf("pruned %d expired screens", len(keys))
	}
}

func (b *Bot) pruneLoop() {
	interval := b.cfg.Screen.SessionTTL / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for now := range ticker.C {
		b.pruneSessions(now)
	}
}

func (b *Bot) langFor(u *tgbotapi.User) string {
	if u != nil && strings.HasPrefix(u.LanguageCode, "en") {
		return lang.En
	}
	return lang.Normalize(b.cfg.Screen.Lang)
}

func (b *Bot) setBotCommands() error {
	cfg := tgbotapi.NewSetMyCommands(
		tgbotapi.BotCommand{Command: "start", Description: "Início"},
		tgbotapi.BotCommand{Command: "food", Description: "Abrir um prato: /food <id>"},
	)
	_, err := b.out.Request(cfg)
	return err
}

func (b *Bot) Start() {
	if err := b.setBotCommands(); err != nil {
		log.Printf("set commands: %v", err)
	}
	if b.cfg.Screen.SessionTTL > 0 {
		go b.pruneLoop()
	}
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	for update := range updates {
		if update.CallbackQuery != nil {
			go b.handleCallback(update.CallbackQuery)
			continue
		}
		if update.Message == nil {
			continue
		}
		b.handleMessage(update.Message)
	}
}

func (b *Bot) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.out.Send(msg); err != nil {
		log.Printf("send error: %v", err)
	}
}

// parseFoodID accepts "12" (from /food 12) and "food_12" (from a /start deep link).
func parseFoodID(arg string) (int64, bool) {
	arg = strings.TrimPrefix(strings.TrimSpace(arg), "food_")
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func (b *Bot) handleMessage(msg *tgbotapi.Message) {
	if !msg.IsCommand() {
		return
	}
	l := b.langFor(msg.From)
	switch msg.Command() {
	case "start", "food":
		id, ok := parseFoodID(msg.CommandArguments())
		if !ok {
			b.send(msg.Chat.ID, lang.T(l, "usage_food"))
			return
		}
		b.openScreen(msg.Chat.ID, id, l)
	}
}

// openScreen loads a food, sends its card and remembers the state under the
// sent message. A failed load still opens the screen, with a retry button.
func (b *Bot) openScreen(chatID int64, foodID int64, l string) {
	ctx, cancel := b.requestContext()
	defer cancel()

	s, err := services.Load(ctx, b.backend, foodID)
	if err != nil {
		log.Printf("openScreen load food_id=%d chat_id=%d: %v", foodID, chatID, err)
		if !s.Loaded {
			s = s.WithFailure(services.ActionReload, err)
		}
	}

	card := services.BuildFoodCard(s, l)
	msg := tgbotapi.NewMessage(chatID, card.Text)
	if kb := cardMarkup(card); kb != nil {
		msg.ReplyMarkup = *kb
	}
	sent, err := b.out.Send(msg)
	if err != nil {
		log.Printf("openScreen send food_id=%d chat_id=%d: %v", foodID, chatID, err)
		return
	}
	key := services.SessionKey{ChatID: chatID, MessageID: sent.MessageID}
	if err := b.sessions.Save(ctx, key, s); err != nil {
		log.Printf("openScreen save session chat_id=%d message_id=%d: %v", chatID, sent.MessageID, err)
	}
}

// editCard re-renders the screen in place. "message is not modified" is ignored.
func (b *Bot) editCard(key services.SessionKey, s services.FoodDetails, l string) {
	card := services.BuildFoodCard(s, l)
	edit := tgbotapi.NewEditMessageText(key.ChatID, key.MessageID, card.Text)
	if kb := cardMarkup(card); kb != nil {
		edit.ReplyMarkup = kb
	}
	if _, err := b.out.Send(edit); err != nil {
		if strings.Contains(err.Error(), "not modified") {
			return
		}
		log.Printf("editCard chat_id=%d message_id=%d: %v", key.ChatID, key.MessageID, err)
	}
}

func (b *Bot) handleCallback(cq *tgbotapi.CallbackQuery) {
	if cq.Message == nil || cq.Message.Chat == nil {
		return
	}
	if _, err := b.out.Request(tgbotapi.NewCallback(cq.ID, "")); err != nil {
		log.Printf("answer callback: %v", err)
	}

	action, ok := services.ParseAction(cq.Data)
	if !ok || action.Name == services.ActionNoop {
		return
	}
	key := services.SessionKey{ChatID: cq.Message.Chat.ID, MessageID: cq.Message.MessageID}
	l := b.langFor(cq.From)

	unlock := b.lockScreen(key)
	defer unlock()

	ctx, cancel := b.requestContext()
	defer cancel()

	s, found, err := b.sessions.Get(ctx, key)
	if err != nil {
		log.Printf("handleCallback get session chat_id=%d message_id=%d: %v", key.ChatID, key.MessageID, err)
		return
	}
	if !found {
		b.screenLocks.Delete(key)
		b.send(key.ChatID, lang.T(l, "screen_expired"))
		return
	}

	next, changed := b.apply(ctx, key, s, action, l)
	if !changed {
		return
	}
	if err := b.sessions.Save(ctx, key, next); err != nil {
		log.Printf("handleCallback save session chat_id=%d message_id=%d: %v", key.ChatID, key.MessageID, err)
	}
	b.editCard(key, next, l)
}

// apply runs one action against s and returns the state to render.
func (b *Bot) apply(ctx context.Context, key services.SessionKey, s services.FoodDetails, a services.Action, l string) (services.FoodDetails, bool) {
	switch a.Name {
	case services.ActionFavorite:
		next, err := services.ToggleFavorite(ctx, b.backend, s)
		if err != nil {
			log.Printf("toggle favorite food_id=%d: %v", s.FoodID, err)
		}
		return next.WithFailure(services.ActionFavorite, err), true

	case services.ActionReload:
		next, err := services.Load(ctx, b.backend, s.FoodID)
		if err != nil {
			log.Printf("reload food_id=%d: %v", s.FoodID, err)
			if !next.Loaded {
				return next.WithFailure(services.ActionReload, err), true
			}
		}
		return next.WithFailure(services.ActionReload, nil), true

	case services.ActionOrder:
		return b.submitOrder(ctx, key, s, l), true
	}
	return s.Apply(a)
}

// submitOrder places the order and reports the outcome in the chat. After a
// partial failure the quantity drops to the lines still missing, so a retry
// does not repeat lines the backend already accepted.
func (b *Bot) submitOrder(ctx context.Context, key services.SessionKey, s services.FoodDetails, l string) services.FoodDetails {
	res, err := services.SubmitOrder(ctx, b.backend, s, b.cfg.Screen.OrderConcurrency)
	if err == nil {
		b.send(key.ChatID, lang.T(l, "order_placed", res.Placed, services.FormattedTotal(s)))
		return s.WithFailure(services.ActionOrder, nil)
	}

	log.Printf("submit order food_id=%d placed=%d requested=%d: %v", s.FoodID, res.Placed, res.Requested, err)
	if errors.Is(err, services.ErrNoFood) {
		return s.WithFailure(services.ActionReload, err)
	}
	next := s
	if res.Partial() {
		b.send(key.ChatID, lang.T(l, "order_partial", res.Placed, res.Requested))
		next.Quantity = res.Requested - res.Placed
	}
	return next.WithFailure(services.ActionOrder, err)
}
