package services

import (
	"fmt"
	"strconv"
	"strings"

	"food-details/lang"
)

// Callback actions carried by the card's buttons ("fd:<action>[:<extra id>]").
const (
	ActionFavorite       = "fav"
	ActionIncrementExtra = "xinc"
	ActionDecrementExtra = "xdec"
	ActionIncrementItem  = "qinc"
	ActionDecrementItem  = "qdec"
	ActionOrder          = "order"
	ActionReload         = "reload"
	ActionNoop           = "noop"

	callbackPrefix = "fd:"
)

// CardButton is one inline button (text + callback_data).
type CardButton struct {
	Text         string
	CallbackData string
}

// FoodCard is the text and inline keyboard of a Food Details screen.
type FoodCard struct {
	Text    string
	Buttons [][]CardButton
}

// Action is a decoded button press.
type Action struct {
	Name    string
	ExtraID int64
}

// CallbackData encodes a for a button.
func (a Action) CallbackData() string {
	if a.Name == ActionIncrementExtra || a.Name == ActionDecrementExtra {
		return callbackPrefix + a.Name + ":" + strconv.FormatInt(a.ExtraID, 10)
	}
	return callbackPrefix + a.Name
}

// ParseAction decodes callback data produced by BuildFoodCard.
func ParseAction(data string) (Action, bool) {
	if !strings.HasPrefix(data, callbackPrefix) {
		return Action{}, false
	}
	parts := strings.Split(strings.TrimPrefix(data, callbackPrefix), ":")
	switch parts[0] {
	case ActionIncrementExtra, ActionDecrementExtra:
		if len(parts) != 2 {
			return Action{}, false
		}
		id, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			return Action{}, false
		}
		return Action{Name: parts[0], ExtraID: id}, true
	case ActionFavorite, ActionIncrementItem, ActionDecrementItem, ActionOrder, ActionReload, ActionNoop:
		if len(parts) != 1 {
			return Action{}, false
		}
		return Action{Name: parts[0]}, true
	}
	return Action{}, false
}

// Apply runs a local quantity action. Network actions (favorite, order,
// reload) and noop leave s unchanged with changed=false.
func (s FoodDetails) Apply(a Action) (FoodDetails, bool) {
	switch a.Name {
	case ActionIncrementExtra:
		return s.IncrementExtra(a.ExtraID)
	case ActionDecrementExtra:
		return s.DecrementExtra(a.ExtraID)
	case ActionIncrementItem:
		return s.IncrementItem()
	case ActionDecrementItem:
		return s.DecrementItem()
	}
	return s, false
}

func failureText(langCode string, f *Failure) string {
	switch f.Action {
	case ActionFavorite:
		return lang.T(langCode, "fav_failed")
	case ActionOrder:
		return lang.T(langCode, "order_failed")
	default:
		return lang.T(langCode, "load_failed")
	}
}

func button(text string, a Action) CardButton {
	return CardButton{Text: text, CallbackData: a.CallbackData()}
}

// BuildFoodCard renders s. The favorite toggle lives in the first keyboard row
// and follows s.IsFavorite like every other control.
func BuildFoodCard(s FoodDetails, langCode string) FoodCard {
	retry := []CardButton{}
	if s.Failure != nil {
		retry = append(retry, button(lang.T(langCode, "retry"), Action{Name: s.Failure.Action}))
	}

	if !s.Loaded {
		text := lang.T(langCode, "load_failed")
		if len(retry) == 0 {
			retry = append(retry, button(lang.T(langCode, "retry"), Action{Name: ActionReload}))
		}
		return FoodCard{Text: text, Buttons: [][]CardButton{retry}}
	}

	var b strings.Builder
	b.WriteString(s.Food.Name + "\n")
	if s.Food.Description != "" {
		b.WriteString(s.Food.Description + "\n")
	}
	b.WriteString(s.Food.FormattedPrice + "\n\n")
	b.WriteString(lang.T(langCode, "extras_title") + ":\n")
	if len(s.Extras) == 0 {
		b.WriteString(lang.T(langCode, "no_extras") + "\n")
	}
	for _, e := range s.Extras {
		fmt.Fprintf(&b, "• %s (%s) × %d\n", e.Name, FormatValue(e.Value), e.Quantity)
	}
	fmt.Fprintf(&b, "\n%s: %s (× %d)", lang.T(langCode, "total_title"), FormattedTotal(s), s.Quantity)
	if s.Failure != nil {
		b.WriteString("\n\n⚠️ " + failureText(langCode, s.Failure))
	}

	favLabel := lang.T(langCode, "favorite_off")
	if s.IsFavorite {
		favLabel = lang.T(langCode, "favorite_on")
	}
	noop := Action{Name: ActionNoop}

	buttons := [][]CardButton{{button(favLabel, Action{Name: ActionFavorite})}}
	for _, e := range s.Extras {
		buttons = append(buttons, []CardButton{
			button("➖", Action{Name: ActionDecrementExtra, ExtraID: e.ID}),
			button(fmt.Sprintf("%s: %d", e.Name, e.Quantity), noop),
			button("➕", Action{Name: ActionIncrementExtra, ExtraID: e.ID}),
		})
	}
	buttons = append(buttons, []CardButton{
		button("➖", Action{Name: ActionDecrementItem}),
		button(strconv.Itoa(s.Quantity), noop),
		button("➕", Action{Name: ActionIncrementItem}),
	})
	buttons = append(buttons, []CardButton{
		button(lang.T(langCode, "confirm_order")+" · "+FormattedTotal(s), Action{Name: ActionOrder}),
	})
	if len(retry) > 0 {
		buttons = append(buttons, retry)
	}
	return FoodCard{Text: b.String(), Buttons: buttons}
}
