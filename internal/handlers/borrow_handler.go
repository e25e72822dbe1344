package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sndpbag/Library-Management-API/internal/apperrors"
	"github.com/sndpbag/Library-Management-API/internal/constants"
	"github.com/sndpbag/Library-Management-API/internal/models"
	"github.com/sndpbag/Library-Management-API/internal/utils"
)

type BorrowHandler struct {
	BorrowCollection *mongo.Collection
	BookCollection   *mongo.Collection
	AuditLogger      utils.Logger
}

func NewBorrowHandler(borrowColl, bookColl *mongo.Collection, logger utils.Logger) *BorrowHandler {
	return &BorrowHandler{
		BorrowCollection: borrowColl,
		BookCollection:   bookColl,
		AuditLogger:      logger,
	}
}

// POST /borrow
func (h *BorrowHandler) BorrowBook(w http.ResponseWriter, r *http.Request) {
	var input models.BorrowInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.JSONError(w, apperrors.BadPayload())
		return
	}

	if err := input.CheckPresence(); err != nil {
		utils.JSONError(w, err)
		return
	}
	if err := input.Validate(); err != nil {
		utils.JSONError(w, err)
		return
	}

	bookID, err := primitive.ObjectIDFromHex(input.Book)
	if err != nil {
		utils.JSONError(w, apperrors.InvalidIdentifier())
		return
	}

	quantity := *input.Quantity
	ctx := r.Context()

	var book models.Book
	err = h.BookCollection.FindOne(ctx, bson.M{"_id": bookID}).Decode(&book)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.JSONError(w, apperrors.NotFound("Book with the given ID does not exist"))
			return
		}
		utils.JSONError(w, apperrors.Internal(err))
		return
	}
	if book.Copies < quantity {
		utils.JSONError(w, apperrors.InsufficientCopies(book.Copies, quantity))
		return
	}

	// Commit: decrement and recompute availability in one conditional
	// update, so two concurrent borrows cannot overdraw the copy count.
	filter := bson.M{"_id": bookID, "copies": bson.M{"$gte": quantity}}
	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"copies":    bson.M{"$subtract": bson.A{"$copies", quantity}},
			"updatedAt": "$$NOW",
		}}},
		{{Key: "$set", Value: bson.M{
			"available": bson.M{"$gt": bson.A{"$copies", 0}},
		}}},
	}
	err = h.BookCollection.FindOneAndUpdate(ctx, filter, update).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Lost a race since the pre-check; re-read for an accurate error.
			var current models.Book
			if err := h.BookCollection.FindOne(ctx, bson.M{"_id": bookID}).Decode(&current); err != nil {
				utils.JSONError(w, apperrors.NotFound("Book with the given ID does not exist"))
				return
			}
			utils.JSONError(w, apperrors.InsufficientCopies(current.Copies, quantity))
			return
		}
		utils.JSONError(w, apperrors.Internal(err))
		return
	}

	now := time.Now().UTC()
	borrow := models.Borrow{
		ID:        primitive.NewObjectID(),
		Book:      bookID,
		Quantity:  quantity,
		DueDate:   *input.DueDate,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// An insert failure here leaves the decrement in place with no
	// compensating write; the copies are lost rather than over-lent.
	if _, err := h.BorrowCollection.InsertOne(ctx, borrow); err != nil {
		utils.JSONError(w, apperrors.Internal(err))
		return
	}

	h.AuditLogger.Log(ctx, models.BorrowEntity, constants.Borrow, borrow)

	utils.JSONSuccess(w, http.StatusCreated, "Book borrowed successfully", borrow)
}

// GET /borrow
func (h *BorrowHandler) GetBorrowSummary(w http.ResponseWriter, r *http.Request) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":           "$book",
			"totalQuantity": bson.M{"$sum": "$quantity"},
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "books",
			"localField":   "_id",
			"foreignField": "_id",
			"as":           "bookDetails",
		}}},
		{{Key: "$unwind", Value: "$bookDetails"}},
		{{Key: "$project", Value: bson.M{
			"_id": 0,
			"book": bson.M{
				"title": "$bookDetails.title",
				"isbn":  "$bookDetails.isbn",
			},
			"totalQuantity": 1,
		}}},
		{{Key: "$sort", Value: bson.M{"totalQuantity": -1}}},
	}

	ctx := r.Context()
	cursor, err := h.BorrowCollection.Aggregate(ctx, pipeline)
	if err != nil {
		utils.JSONError(w, apperrors.Internal(err))
		return
	}
	defer cursor.Close(ctx)

	summary := []models.SummaryEntry{}
	if err = cursor.All(ctx, &summary); err != nil {
		utils.JSONError(w, apperrors.Internal(err))
		return
	}

	utils.JSONSuccess(w, http.StatusOK, "Borrowed books summary retrieved successfully", summary)
}
