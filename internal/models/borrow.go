package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sndpbag/Library-Management-API/internal/apperrors"
)

// Borrow is a write-once transaction record against a Book.
type Borrow struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Book      primitive.ObjectID `bson:"book" json:"book"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	DueDate   time.Time          `bson:"dueDate" json:"dueDate"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

const BorrowEntity = "borrow"

type BorrowInput struct {
	Book     string     `json:"book"`
	Quantity *int       `json:"quantity" validate:"omitempty,min=1"`
	DueDate  *time.Time `json:"dueDate"`
}

// CheckPresence reports the missing-fields error before any other validation.
func (in BorrowInput) CheckPresence() *apperrors.Error {
	if in.Book == "" || in.Quantity == nil || *in.Quantity == 0 || in.DueDate == nil {
		return apperrors.MissingFields("Book ID, quantity, and due date are required")
	}
	return nil
}

func (in BorrowInput) Validate() *apperrors.Error {
	return runValidation(in)
}

// SummaryEntry is one row of the aggregated borrow report.
type SummaryEntry struct {
	Book          SummaryBook `bson:"book" json:"book"`
	TotalQuantity int         `bson:"totalQuantity" json:"totalQuantity"`
}

type SummaryBook struct {
	Title string `bson:"title" json:"title"`
	ISBN  string `bson:"isbn" json:"isbn"`
}
