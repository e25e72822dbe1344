package models

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sndpbag/Library-Management-API/internal/apperrors"
)

type Genre string

const (
	GenreFiction    Genre = "FICTION"
	GenreNonFiction Genre = "NON_FICTION"
	GenreScience    Genre = "SCIENCE"
	GenreHistory    Genre = "HISTORY"
	GenreBiography  Genre = "BIOGRAPHY"
	GenreFantasy    Genre = "FANTASY"

	BookEntity = "book"
)

var ValidGenres = map[string]bool{
	string(GenreFiction):    true,
	string(GenreNonFiction): true,
	string(GenreScience):    true,
	string(GenreHistory):    true,
	string(GenreBiography):  true,
	string(GenreFantasy):    true,
}

func IsValidGenre(genre string) bool {
	return ValidGenres[genre]
}

const genreListMessage = "Genre must be one of: FICTION, NON_FICTION, SCIENCE, HISTORY, BIOGRAPHY, FANTASY"

type Book struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Author      string             `bson:"author" json:"author"`
	Genre       Genre              `bson:"genre" json:"genre"`
	ISBN        string             `bson:"isbn" json:"isbn"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Copies      int                `bson:"copies" json:"copies"`
	Available   bool               `bson:"available" json:"available"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// UpdateAvailability recomputes the derived flag from the copy count.
func (b *Book) UpdateAvailability() {
	b.Available = b.Copies > 0
}

type BookInput struct {
	Title       string `json:"title" validate:"required"`
	Author      string `json:"author" validate:"required"`
	Genre       string `json:"genre" validate:"required,genre"`
	ISBN        string `json:"isbn" validate:"required"`
	Description string `json:"description"`
	Copies      *int   `json:"copies" validate:"required,gte=0"`
}

func (in BookInput) Validate() *apperrors.Error {
	return runValidation(in)
}

// ToBook builds a persistable Book with derived availability and timestamps.
func (in BookInput) ToBook() Book {
	now := time.Now().UTC()
	book := Book{
		ID:          primitive.NewObjectID(),
		Title:       in.Title,
		Author:      in.Author,
		Genre:       Genre(in.Genre),
		ISBN:        in.ISBN,
		Description: in.Description,
		Copies:      *in.Copies,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	book.UpdateAvailability()
	return book
}

// BookUpdate carries a partial update; nil fields are left untouched.
type BookUpdate struct {
	Title       *string `json:"title"`
	Author      *string `json:"author"`
	Genre       *string `json:"genre"`
	ISBN        *string `json:"isbn"`
	Description *string `json:"description"`
	Copies      *int    `json:"copies"`
}

// Validate applies the creation rules to every present field.
func (u BookUpdate) Validate() *apperrors.Error {
	fields := map[string]string{}
	if u.Title != nil && *u.Title == "" {
		fields["title"] = "Title is required"
	}
	if u.Author != nil && *u.Author == "" {
		fields["author"] = "Author is required"
	}
	if u.Genre != nil && !IsValidGenre(*u.Genre) {
		fields["genre"] = genreListMessage
	}
	if u.ISBN != nil && *u.ISBN == "" {
		fields["isbn"] = "ISBN is required"
	}
	if u.Copies != nil && *u.Copies < 0 {
		fields["copies"] = "Copies must be a non-negative number"
	}
	if len(fields) > 0 {
		return apperrors.Validation(fields)
	}
	return nil
}

func (u BookUpdate) IsEmpty() bool {
	return u.Title == nil && u.Author == nil && u.Genre == nil &&
		u.ISBN == nil && u.Description == nil && u.Copies == nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("genre", func(fl validator.FieldLevel) bool {
		return IsValidGenre(fl.Field().String())
	})
	return v
}

func runValidation(s any) *apperrors.Error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.Internal(err)
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fieldMessage(fe)
	}
	return apperrors.Validation(fields)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return displayName(fe.Field()) + " is required"
	case "genre":
		return genreListMessage
	case "gte":
		return displayName(fe.Field()) + " must be a non-negative number"
	case "min":
		return displayName(fe.Field()) + " must be at least " + fe.Param()
	default:
		return displayName(fe.Field()) + " is invalid"
	}
}

func displayName(field string) string {
	switch field {
	case "isbn":
		return "ISBN"
	case "dueDate":
		return "Due date"
	default:
		return strings.ToUpper(field[:1]) + field[1:]
	}
}
