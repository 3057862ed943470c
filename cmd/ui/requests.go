package main

import (
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
)

// pdfRequest is an entry on the "requested PDFs" board. The board lives in
// memory only, requests do not survive a restart.
type pdfRequest struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

type requestBoard struct {
	mu       sync.Mutex
	requests []pdfRequest
}

func (b *requestBoard) add(title, text string) pdfRequest {
	req := pdfRequest{
		ID:        uuid.Must(uuid.NewV4()).String(),
		Title:     title,
		Text:      text,
		Status:    "Pending",
		CreatedAt: time.Now(),
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.requests = append([]pdfRequest{req}, b.requests...)
	return req
}

func (b *requestBoard) list() []pdfRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]pdfRequest, len(b.requests))
	copy(out, b.requests)
	return out
}

type requestInput struct {
	Title string `json:"title" form:"title"`
	Text  string `json:"text" form:"text"`
}

func (app *uiApp) addRequest(c *gin.Context) {
	var in requestInput
	if err := c.ShouldBind(&in); err != nil {
		c.JSON(400, gin.H{
			"msg": err.Error(),
		})
		return
	}
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Text) == "" {
		c.JSON(400, gin.H{
			"msg": "Please fill both fields",
		})
		return
	}

	c.JSON(200, app.board.add(in.Title, in.Text))
}

func (app *uiApp) getRequests(c *gin.Context) {
	c.JSON(200, app.board.list())
}
