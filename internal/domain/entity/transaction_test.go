package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/home-inventory/internal/domain/entity"
)

func TestParseTransactionType(t *testing.T) {
	for _, in := range []string{"in", "IN", "In", " iN "} {
		got, ok := entity.ParseTransactionType(in)
		assert.True(t, ok, in)
		assert.Equal(t, entity.TransactionTypeIn, got)
	}
	got, ok := entity.ParseTransactionType("out")
	assert.True(t, ok)
	assert.Equal(t, entity.TransactionTypeOut, got)

	for _, in := range []string{"", "ADJUSTMENT", "inn", "salida"} {
		_, ok := entity.ParseTransactionType(in)
		assert.False(t, ok, in)
	}
}

func TestTransactionPatch(t *testing.T) {
	note := "x"
	q := int64(1)
	assert.True(t, entity.TransactionPatch{}.IsEmpty())
	assert.False(t, entity.TransactionPatch{Note: &note}.TouchesEffect())
	assert.True(t, entity.TransactionPatch{Quantity: &q}.TouchesEffect())
}
