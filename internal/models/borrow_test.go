package models_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sndpbag/Library-Management-API/internal/apperrors"
	"github.com/sndpbag/Library-Management-API/internal/models"
)

func TestBorrowInput_CheckPresence(t *testing.T) {
	due := time.Now().AddDate(0, 1, 0)
	bookID := primitive.NewObjectID().Hex()

	tests := []struct {
		name    string
		input   models.BorrowInput
		missing bool
	}{
		{"all present", models.BorrowInput{Book: bookID, Quantity: intPtr(2), DueDate: &due}, false},
		{"no book", models.BorrowInput{Quantity: intPtr(2), DueDate: &due}, true},
		{"no quantity", models.BorrowInput{Book: bookID, DueDate: &due}, true},
		{"zero quantity", models.BorrowInput{Book: bookID, Quantity: intPtr(0), DueDate: &due}, true},
		{"no due date", models.BorrowInput{Book: bookID, Quantity: intPtr(2)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.CheckPresence()
			if tt.missing {
				require.NotNil(t, err)
				assert.Equal(t, apperrors.KindMissingFields, err.Kind)
			} else {
				assert.Nil(t, err)
			}
		})
	}
}

func TestBorrowInput_Validate(t *testing.T) {
	due := time.Now().AddDate(0, 1, 0)
	in := models.BorrowInput{
		Book:     primitive.NewObjectID().Hex(),
		Quantity: intPtr(-3),
		DueDate:  &due,
	}

	err := in.Validate()
	require.NotNil(t, err)
	assert.Equal(t, apperrors.KindValidation, err.Kind)
	assert.Equal(t, "Quantity must be at least 1", err.Fields["quantity"])

	in.Quantity = intPtr(1)
	assert.Nil(t, in.Validate())
}
