package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Rafiklab24/loyal-supplychain/internal/importer/model"
)

func TestMapStatus(t *testing.T) {
	tests := []struct {
		in   string
		want model.Status
	}{
		{"أبحر", model.StatusSailed},
		{"ابحر", model.StatusSailed},
		{"تم الشحن", model.StatusSailed},
		{"وصلت", model.StatusArrived},
		{"تم التخليص", model.StatusCleared},
		{"تم التسليم", model.StatusDelivered},
		{"تم التعاقد", model.StatusConfirmed},
		{"جاري التحميل", model.StatusLoading},
		{"ملغي", model.StatusCancelled},
		{"ملغى", model.StatusCancelled},
		{"تخطيط", model.StatusPlanning},
		{"", model.StatusPlanning},
		{"something else", model.StatusPlanning},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MapStatus(tt.in), "input %q", tt.in)
	}
}
