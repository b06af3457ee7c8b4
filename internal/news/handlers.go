package news

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
	"gorm.io/gorm"

	"github.com/newsroomhq/newsroom-backend/internal/auth"
	"github.com/newsroomhq/newsroom-backend/internal/comments"
	"github.com/newsroomhq/newsroom-backend/internal/httperr"
	"github.com/newsroomhq/newsroom-backend/internal/ident"
	"github.com/newsroomhq/newsroom-backend/internal/middleware"

	"github.com/go-chi/chi/v5"
)

type Handlers struct {
	db *gorm.DB
}

func NewHandlers(db *gorm.DB) *Handlers {
	return &Handlers{db: db}
}

// newsInput is the create/update body. Title is the only required field;
// the rest are stored as given.
type newsInput struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Image    string `json:"image"`
	Category string `json:"category"`
	Status   string `json:"status"`
}

// listQuery applies the shared shape of every listing: most recently
// updated first, optionally truncated by a positive ?limit.
func listQuery(tx *gorm.DB, r *http.Request) *gorm.DB {
	tx = tx.Order("updated_at DESC")
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil && limit > 0 {
			tx = tx.Limit(limit)
		}
	}
	return tx
}

// List is the admin listing: every article regardless of status.
func (h *Handlers) List(w http.ResponseWriter, r *http.Request) error {
	newsList := []News{}
	if err := listQuery(h.db, r).Find(&newsList).Error; err != nil {
		return err
	}
	httperr.JSON(w, http.StatusOK, newsList)
	return nil
}

// ListPublished is the public listing: published articles only.
func (h *Handlers) ListPublished(w http.ResponseWriter, r *http.Request) error {
	newsList := []News{}
	if err := listQuery(h.db.Where("status = ?", StatusPublished), r).Find(&newsList).Error; err != nil {
		return err
	}
	httperr.JSON(w, http.StatusOK, newsList)
	return nil
}

func (h *Handlers) ListByCategory(w http.ResponseWriter, r *http.Request) error {
	category := r.URL.Query().Get("category")
	if category == "" {
		return httperr.BadRequest("Parameter missing")
	}

	newsList := []News{}
	if err := listQuery(h.db.Where("category = ?", category), r).Find(&newsList).Error; err != nil {
		return err
	}
	httperr.JSON(w, http.StatusOK, newsList)
	return nil
}

// Search matches a case-insensitive substring against title or content.
// The needle accepts either ?filter= or ?query=.
func (h *Handlers) Search(w http.ResponseWriter, r *http.Request) error {
	needle := r.URL.Query().Get("filter")
	if needle == "" {
		needle = r.URL.Query().Get("query")
	}
	if needle == "" {
		return httperr.BadRequest("Parameter missing")
	}

	// NFC so composed and decomposed forms of the same text match.
	pattern := "%" + escapeLike(norm.NFC.String(needle)) + "%"
	newsList := []News{}
	err := h.db.Where("title ILIKE ? OR content ILIKE ?", pattern, pattern).
		Order("updated_at DESC").Find(&newsList).Error
	if err != nil {
		return err
	}
	httperr.JSON(w, http.StatusOK, newsList)
	return nil
}

// escapeLike neutralizes LIKE metacharacters so the needle is matched
// literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func (h *Handlers) Count(w http.ResponseWriter, r *http.Request) error {
	tx := h.db.Model(&News{})
	if status := r.URL.Query().Get("status"); status != "" {
		tx = tx.Where("status = ?", status)
	}

	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return err
	}
	httperr.JSON(w, http.StatusOK, map[string]int64{"newsCount": count})
	return nil
}

func (h *Handlers) Get(w http.ResponseWriter, r *http.Request) error {
	newsID := chi.URLParam(r, "newsId")
	if !ident.IsValid(newsID) {
		return httperr.BadRequest("Invalid News Id")
	}

	var article News
	if err := h.db.First(&article, "id = ?", newsID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httperr.NotFound("News Not Found")
		}
		return err
	}
	httperr.JSON(w, http.StatusOK, article)
	return nil
}

// author resolves the session's user id to an account. The route is
// already behind RequireAuth, but the account can have disappeared since
// the session was opened.
func (h *Handlers) author(r *http.Request) (auth.User, error) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		return auth.User{}, httperr.Unauthorized("User Not Authenticated")
	}

	var user auth.User
	if err := h.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return auth.User{}, httperr.Unauthorized("User Not Authenticated")
		}
		return auth.User{}, err
	}
	return user, nil
}

func (h *Handlers) Create(w http.ResponseWriter, r *http.Request) error {
	var in newsInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		return httperr.BadRequest("Invalid request body")
	}
	if in.Title == "" {
		return httperr.BadRequest("News must have title")
	}

	author, err := h.author(r)
	if err != nil {
		return err
	}

	article := News{
		ID:        ident.New(),
		Title:     in.Title,
		Content:   in.Content,
		Image:     in.Image,
		Category:  in.Category,
		Status:    in.Status,
		CreatedBy: author.Username,
		EditedBy:  author.Username,
	}
	if err := h.db.Create(&article).Error; err != nil {
		return err
	}
	httperr.JSON(w, http.StatusCreated, article)
	return nil
}

func (h *Handlers) Update(w http.ResponseWriter, r *http.Request) error {
	newsID := chi.URLParam(r, "newsId")
	if !ident.IsValid(newsID) {
		return httperr.BadRequest("Not a valid news id")
	}

	var in newsInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		return httperr.BadRequest("Invalid request body")
	}
	if in.Title == "" {
		return httperr.BadRequest("News must have title")
	}

	var article News
	if err := h.db.First(&article, "id = ?", newsID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httperr.NotFound("News not found")
		}
		return err
	}

	author, err := h.author(r)
	if err != nil {
		return err
	}

	article.Title = in.Title
	article.Content = in.Content
	article.Image = in.Image
	article.Category = in.Category
	article.Status = in.Status
	article.EditedBy = author.Username

	if err := h.db.Save(&article).Error; err != nil {
		return err
	}
	httperr.JSON(w, http.StatusOK, article)
	return nil
}

// Delete removes the article and every comment referencing it in one
// transaction, so a crash can't leave orphaned comments.
func (h *Handlers) Delete(w http.ResponseWriter, r *http.Request) error {
	newsID := chi.URLParam(r, "newsId")
	if !ident.IsValid(newsID) {
		return httperr.BadRequest("Not a Valid News Id")
	}

	var article News
	if err := h.db.First(&article, "id = ?", newsID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httperr.NotFound("No News Found")
		}
		return err
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&comments.Comment{}, "news_id = ?", newsID).Error; err != nil {
			return err
		}
		return tx.Delete(&News{}, "id = ?", newsID).Error
	})
	if err != nil {
		return err
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}
