package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sndpbag/Library-Management-API/internal/apperrors"
	"github.com/sndpbag/Library-Management-API/internal/constants"
	"github.com/sndpbag/Library-Management-API/internal/models"
	"github.com/sndpbag/Library-Management-API/internal/utils"
)

type BookHandler struct {
	BookCollection *mongo.Collection
	AuditLogger    utils.Logger
}

func NewBookHandler(bookColl *mongo.Collection, logger utils.Logger) *BookHandler {
	return &BookHandler{
		BookCollection: bookColl,
		AuditLogger:    logger,
	}
}

// POST /books
func (h *BookHandler) CreateBook(w http.ResponseWriter, r *http.Request) {
	var input models.BookInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.JSONError(w, apperrors.BadPayload())
		return
	}

	if err := input.Validate(); err != nil {
		utils.JSONError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	book := input.ToBook()
	_, err := h.BookCollection.InsertOne(ctx, book)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.JSONError(w, apperrors.DuplicateKey("ISBN already exists"))
			return
		}
		utils.JSONError(w, apperrors.Internal(err))
		return
	}

	h.AuditLogger.Log(ctx, models.BookEntity, constants.Create, book)

	utils.JSONSuccess(w, http.StatusCreated, "Book created successfully", book)
}

// GET /books?filter=GENRE&sortBy=field&sort=asc|desc&limit=n
func (h *BookHandler) GetBooks(w http.ResponseWriter, r *http.Request) {
	query := bson.M{}
	if genre := r.URL.Query().Get("filter"); models.IsValidGenre(genre) {
		query["genre"] = genre
	}

	sortBy := r.URL.Query().Get("sortBy")
	if sortBy == "" {
		sortBy = "createdAt"
	}
	sortOrder := 1
	if r.URL.Query().Get("sort") == "desc" {
		sortOrder = -1
	}

	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	findOpts := options.Find().
		SetSort(bson.D{{Key: sortBy, Value: sortOrder}}).
		SetLimit(int64(limit))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cursor, err := h.BookCollection.Find(ctx, query, findOpts)
	if err != nil {
		utils.JSONError(w, apperrors.Internal(err))
		return
	}
	defer cursor.Close(ctx)

	books := []models.Book{}
	if err = cursor.All(ctx, &books); err != nil {
		utils.JSONError(w, apperrors.Internal(err))
		return
	}

	utils.JSONSuccess(w, http.StatusOK, "Books retrieved successfully", books)
}

// GET /books/{bookId}
func (h *BookHandler) GetBook(w http.ResponseWriter, r *http.Request) {
	bookID, err := primitive.ObjectIDFromHex(mux.Vars(r)["bookId"])
	if err != nil {
		utils.JSONError(w, apperrors.InvalidIdentifier())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

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

	utils.JSONSuccess(w, http.StatusOK, "Book retrieved successfully", book)
}

// PUT /books/{bookId}
func (h *BookHandler) UpdateBook(w http.ResponseWriter, r *http.Request) {
	bookID, err := primitive.ObjectIDFromHex(mux.Vars(r)["bookId"])
	if err != nil {
		utils.JSONError(w, apperrors.InvalidIdentifier())
		return
	}

	var update models.BookUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		utils.JSONError(w, apperrors.BadPayload())
		return
	}
	if update.IsEmpty() {
		utils.JSONError(w, &apperrors.Error{
			Kind:    apperrors.KindValidation,
			Message: "No update fields provided",
		})
		return
	}
	if err := update.Validate(); err != nil {
		utils.JSONError(w, err)
		return
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Author != nil {
		set["author"] = *update.Author
	}
	if update.Genre != nil {
		set["genre"] = *update.Genre
	}
	if update.ISBN != nil {
		set["isbn"] = *update.ISBN
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.Copies != nil {
		set["copies"] = *update.Copies
		// available is derived from copies; keep both in one write
		set["available"] = *update.Copies > 0
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var book models.Book
	err = h.BookCollection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": bookID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&book)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.JSONError(w, apperrors.NotFound("Book with the given ID does not exist"))
			return
		}
		if mongo.IsDuplicateKeyError(err) {
			utils.JSONError(w, apperrors.DuplicateKey("ISBN already exists"))
			return
		}
		utils.JSONError(w, apperrors.Internal(err))
		return
	}

	h.AuditLogger.Log(ctx, models.BookEntity, constants.Update, set)

	utils.JSONSuccess(w, http.StatusOK, "Book updated successfully", book)
}

// DELETE /books/{bookId}
func (h *BookHandler) DeleteBook(w http.ResponseWriter, r *http.Request) {
	bookID, err := primitive.ObjectIDFromHex(mux.Vars(r)["bookId"])
	if err != nil {
		utils.JSONError(w, apperrors.InvalidIdentifier())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := h.BookCollection.DeleteOne(ctx, bson.M{"_id": bookID})
	if err != nil {
		utils.JSONError(w, apperrors.Internal(err))
		return
	}
	if result.DeletedCount == 0 {
		utils.JSONError(w, apperrors.NotFound("Book with the given ID does not exist"))
		return
	}

	h.AuditLogger.Log(ctx, models.BookEntity, constants.Delete, bookID.Hex())

	utils.JSONSuccess(w, http.StatusOK, "Book deleted successfully", nil)
}
