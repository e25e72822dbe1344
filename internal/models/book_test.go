package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sndpbag/Library-Management-API/internal/apperrors"
	"github.com/sndpbag/Library-Management-API/internal/models"
)

func intPtr(n int) *int       { return &n }
func strPtr(s string) *string { return &s }

func TestIsValidGenre(t *testing.T) {
	tests := []struct {
		name    string
		genre   string
		isValid bool
	}{
		{"Valid Fiction", string(models.GenreFiction), true},
		{"Valid Non-Fiction", string(models.GenreNonFiction), true},
		{"Valid Science", string(models.GenreScience), true},
		{"Valid History", string(models.GenreHistory), true},
		{"Valid Biography", string(models.GenreBiography), true},
		{"Valid Fantasy", string(models.GenreFantasy), true},
		{"Invalid Genre", "ROMANCE", false},
		{"Lowercase Genre", "science", false},
		{"Empty Genre", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := models.IsValidGenre(tt.genre); got != tt.isValid {
				t.Errorf("IsValidGenre() = %v, want %v", got, tt.isValid)
			}
		})
	}
}

func TestBookInput_Validate(t *testing.T) {
	valid := models.BookInput{
		Title:  "The Selfish Gene",
		Author: "Richard Dawkins",
		Genre:  "SCIENCE",
		ISBN:   "978-0-19-286092-7",
		Copies: intPtr(4),
	}
	assert.Nil(t, valid.Validate())

	t.Run("zero copies is valid", func(t *testing.T) {
		in := valid
		in.Copies = intPtr(0)
		assert.Nil(t, in.Validate())
	})

	t.Run("missing everything", func(t *testing.T) {
		err := models.BookInput{}.Validate()
		require.NotNil(t, err)
		assert.Equal(t, apperrors.KindValidation, err.Kind)
		assert.Equal(t, "Title is required", err.Fields["title"])
		assert.Equal(t, "Author is required", err.Fields["author"])
		assert.Equal(t, "Genre is required", err.Fields["genre"])
		assert.Equal(t, "ISBN is required", err.Fields["isbn"])
		assert.Equal(t, "Copies is required", err.Fields["copies"])
	})

	t.Run("unknown genre", func(t *testing.T) {
		in := valid
		in.Genre = "ROMANCE"
		err := in.Validate()
		require.NotNil(t, err)
		assert.Equal(t,
			"Genre must be one of: FICTION, NON_FICTION, SCIENCE, HISTORY, BIOGRAPHY, FANTASY",
			err.Fields["genre"])
	})

	t.Run("negative copies", func(t *testing.T) {
		in := valid
		in.Copies = intPtr(-1)
		err := in.Validate()
		require.NotNil(t, err)
		assert.Equal(t, "Copies must be a non-negative number", err.Fields["copies"])
	})
}

func TestBookInput_ToBook(t *testing.T) {
	in := models.BookInput{
		Title:  "Dune",
		Author: "Frank Herbert",
		Genre:  "FANTASY",
		ISBN:   "978-0-441-17271-9",
		Copies: intPtr(3),
	}

	book := in.ToBook()
	assert.False(t, book.ID.IsZero())
	assert.True(t, book.Available)
	assert.Equal(t, 3, book.Copies)
	assert.False(t, book.CreatedAt.IsZero())

	in.Copies = intPtr(0)
	assert.False(t, in.ToBook().Available)
}

func TestBook_UpdateAvailability(t *testing.T) {
	book := models.Book{Copies: 2}
	book.UpdateAvailability()
	assert.True(t, book.Available)

	book.Copies = 0
	book.UpdateAvailability()
	assert.False(t, book.Available)
}

func TestBookUpdate_Validate(t *testing.T) {
	t.Run("nil fields pass", func(t *testing.T) {
		assert.Nil(t, models.BookUpdate{}.Validate())
	})

	t.Run("present fields follow creation rules", func(t *testing.T) {
		err := models.BookUpdate{
			Title:  strPtr(""),
			Genre:  strPtr("ROMANCE"),
			Copies: intPtr(-2),
		}.Validate()
		require.NotNil(t, err)
		assert.Equal(t, "Title is required", err.Fields["title"])
		assert.Contains(t, err.Fields["genre"], "Genre must be one of")
		assert.Equal(t, "Copies must be a non-negative number", err.Fields["copies"])
	})

	t.Run("IsEmpty", func(t *testing.T) {
		assert.True(t, models.BookUpdate{}.IsEmpty())
		assert.False(t, models.BookUpdate{Copies: intPtr(1)}.IsEmpty())
	})
}
