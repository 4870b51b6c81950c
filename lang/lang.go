// Package lang holds the screen's UI strings.
package lang

import "fmt"

const (
	Pt = "pt"
	En = "en"
)

var texts = map[string]map[string]string{
	Pt: {
		"extras_title":   "Adicionais",
		"no_extras":      "Sem adicionais",
		"total_title":    "Total do pedido",
		"confirm_order":  "✅ Confirmar pedido",
		"favorite_on":    "♥ Favorito",
		"favorite_off":   "♡ Favoritar",
		"retry":          "🔄 Tentar novamente",
		"load_failed":    "Não foi possível carregar o prato.",
		"fav_failed":     "Não foi possível atualizar o favorito.",
		"order_failed":   "Não foi possível enviar o pedido.",
		"order_placed":   "Pedido confirmado! %d item(ns), total %s.",
		"order_partial":  "Apenas %d de %d itens foram enviados.",
		"usage_food":     "Use /food <id> para abrir um prato.",
		"screen_expired": "Esta tela expirou. Abra o prato novamente.",
	},
	En: {
		"extras_title":   "Extras",
		"no_extras":      "No extras",
		"total_title":    "Order total",
		"confirm_order":  "✅ Confirm order",
		"favorite_on":    "♥ Favorite",
		"favorite_off":   "♡ Add to favorites",
		"retry":          "🔄 Try again",
		"load_failed":    "Could not load this dish.",
		"fav_failed":     "Could not update favorite.",
		"order_failed":   "Could not place the order.",
		"order_placed":   "Order placed! %d item(s), total %s.",
		"order_partial":  "Only %d of %d items were sent.",
		"usage_food":     "Send /food <id> to open a dish.",
		"screen_expired": "This screen expired. Open the dish again.",
	},
}

// Normalize maps unknown codes to Pt.
func Normalize(code string) string {
	if _, ok := texts[code]; ok {
		return code
	}
	return Pt
}

// T returns the text for key in code, falling back to Pt and then to key.
func T(code, key string, args ...interface{}) string {
	s, ok := texts[Normalize(code)][key]
	if !ok {
		if s, ok = texts[Pt][key]; !ok {
			return key
		}
	}
	if len(args) > 0 {
		return fmt.Sprintf(s, args...)
	}
	return s
}
