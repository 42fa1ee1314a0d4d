package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/ErlanBelekov/blog-api/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Validation messages name fields by their JSON key.
func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

const statusSuccess = "success"

type envelope struct {
	Status string `json:"status"`
	Data   any    `json:"data"`
}

type listEnvelope struct {
	Status string         `json:"status"`
	Data   []postResponse `json:"data"`
	Page   int            `json:"page"`
	Limit  int            `json:"limit"`
	Total  int            `json:"total"`
}

type userResponse struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type authorResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// postResponse.Author is either the owner id or an authorResponse, depending
// on whether the endpoint inlines the owner.
type postResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Body        string    `json:"body"`
	Tags        []string  `json:"tags"`
	State       string    `json:"state"`
	ReadCount   int64     `json:"read_count"`
	ReadingTime string    `json:"reading_time"`
	Timestamp   time.Time `json:"timestamp"`
	Author      any       `json:"author"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

func toPostResponse(p *domain.Post, inlineAuthor bool) postResponse {
	var author any = p.AuthorID
	if inlineAuthor && p.Author != nil {
		author = authorResponse{
			ID:        p.Author.ID,
			FirstName: p.Author.FirstName,
			LastName:  p.Author.LastName,
			Email:     p.Author.Email,
		}
	}
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return postResponse{
		ID:          p.ID,
		Title:       p.Title,
		Slug:        p.Slug,
		Description: p.Description,
		Body:        p.Body,
		Tags:        tags,
		State:       string(p.State),
		ReadCount:   p.ReadCount,
		ReadingTime: fmt.Sprintf("%d min read", p.ReadingTime),
		Timestamp:   p.CreatedAt,
		Author:      author,
	}
}

func toListEnvelope(list *domain.PostList, inlineAuthor bool) listEnvelope {
	data := make([]postResponse, 0, len(list.Posts))
	for _, p := range list.Posts {
		data = append(data, toPostResponse(p, inlineAuthor))
	}
	return listEnvelope{
		Status: statusSuccess,
		Data:   data,
		Page:   list.Page.Number,
		Limit:  list.Page.Limit,
		Total:  list.Total,
	}
}

// bindJSON decodes the request body into req and reports binding failures
// as validation errors. It returns false when the handler should stop.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		_ = c.Error(bindingError(err))
		return false
	}
	return true
}

func bindingError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return domain.Validation("Malformed JSON body.")
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return domain.Validation(strings.Join(msgs, ". "))
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
