package comments

import (
	"encoding/json"
	"errors"
	"net/http"

	"gorm.io/gorm"

	"github.com/newsroomhq/newsroom-backend/internal/httperr"
	"github.com/newsroomhq/newsroom-backend/internal/ident"

	"github.com/go-chi/chi/v5"
)

type Handlers struct {
	db *gorm.DB
}

func NewHandlers(db *gorm.DB) *Handlers {
	return &Handlers{db: db}
}

type commentInput struct {
	NewsID  string `json:"newsId"`
	Comment string `json:"comment"`
}

// ListByNews returns a news article's comments, newest first.
func (h *Handlers) ListByNews(w http.ResponseWriter, r *http.Request) error {
	newsID := r.URL.Query().Get("newsId")
	if newsID == "" {
		return httperr.BadRequest("Parameter Missing")
	}
	if !ident.IsValid(newsID) {
		return httperr.BadRequest("News Id Not Valid")
	}

	commentList := []Comment{}
	err := h.db.Where("news_id = ?", newsID).
		Order("created_at DESC").Find(&commentList).Error
	if err != nil {
		return err
	}
	httperr.JSON(w, http.StatusOK, commentList)
	return nil
}

func (h *Handlers) Get(w http.ResponseWriter, r *http.Request) error {
	commentID := chi.URLParam(r, "commentId")
	if !ident.IsValid(commentID) {
		return httperr.BadRequest("Comment Id Not Valid")
	}

	var comment Comment
	if err := h.db.First(&comment, "id = ?", commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httperr.NotFound("No Comment Found")
		}
		return err
	}
	httperr.JSON(w, http.StatusOK, comment)
	return nil
}

// Create stores a comment. Anyone may comment; the parent article is not
// checked for existence.
func (h *Handlers) Create(w http.ResponseWriter, r *http.Request) error {
	var in commentInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		return httperr.BadRequest("Invalid request body")
	}
	if in.NewsID == "" || in.Comment == "" {
		return httperr.BadRequest("Parameter Missing")
	}
	if !ident.IsValid(in.NewsID) {
		return httperr.BadRequest("News Id Not Valid")
	}

	comment := Comment{
		ID:      ident.New(),
		NewsID:  in.NewsID,
		Comment: in.Comment,
	}
	if err := h.db.Create(&comment).Error; err != nil {
		return err
	}
	httperr.JSON(w, http.StatusCreated, comment)
	return nil
}

func (h *Handlers) Delete(w http.ResponseWriter, r *http.Request) error {
	commentID := chi.URLParam(r, "commentId")
	if !ident.IsValid(commentID) {
		return httperr.BadRequest("Comment Id Not Valid")
	}

	var comment Comment
	if err := h.db.First(&comment, "id = ?", commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httperr.NotFound("No Comment Found")
		}
		return err
	}

	if err := h.db.Delete(&comment).Error; err != nil {
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

// Count reports how many comments exist, optionally scoped to one news
// article.
func (h *Handlers) Count(w http.ResponseWriter, r *http.Request) error {
	tx := h.db.Model(&Comment{})
	if newsID := r.URL.Query().Get("newsId"); newsID != "" {
		tx = tx.Where("news_id = ?", newsID)
	}

	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return err
	}
	httperr.JSON(w, http.StatusOK, map[string]int64{"commentsCount": count})
	return nil
}
