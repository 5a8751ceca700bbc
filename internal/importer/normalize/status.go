package normalize

import "github.com/Rafiklab24/loyal-supplychain/internal/importer/model"

// statusWords maps folded Arabic status words from the spreadsheets onto
// the canonical lifecycle statuses. Keys must already be in Fold form.
var statusWords = map[string]model.Status{
	"تخطيط":      model.StatusPlanning,
	"مخطط":       model.StatusPlanning,
	"تم التعاقد": model.StatusConfirmed,
	"متعاقد":     model.StatusConfirmed,
	"تعاقد":      model.StatusConfirmed,
	"تحميل":      model.StatusLoading,
	"جاري التحميل": model.StatusLoading,
	"ابحر":       model.StatusSailed,
	"تم الشحن":   model.StatusSailed,
	"مشحون":      model.StatusSailed,
	"وصل":        model.StatusArrived,
	"وصلت":       model.StatusArrived,
	"في الميناء":  model.StatusArrived,
	"تخليص":      model.StatusCleared,
	"تم التخليص":  model.StatusCleared,
	"تم التسليم":  model.StatusDelivered,
	"مستلم":      model.StatusDelivered,
	"تسليم":      model.StatusDelivered,
	"ملغي":       model.StatusCancelled,
}

// MapStatus resolves a raw status cell to its canonical status. Unknown
// or empty input defaults to planning.
func MapStatus(raw string) model.Status {
	if s, ok := statusWords[Fold(raw)]; ok {
		return s
	}
	return model.StatusPlanning
}
