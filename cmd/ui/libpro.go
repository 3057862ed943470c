package main

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/libprohq/libpro"
	"github.com/sirupsen/logrus"
)

func (app *uiApp) getBooks(c *gin.Context) {
	category := c.Query("category")

	books := app.catalog.List(category)
	c.JSON(200, bookResponse{
		Books:      books,
		TotalCount: len(books),
	})
}

func (app *uiApp) getBook(c *gin.Context) {
	id := parseID(c.Param("id"))

	book, ok := app.catalog.Find(id)
	if !ok {
		c.JSON(404, gin.H{
			"msg": "not found",
		})
		return
	}
	c.JSON(200, book)
}

func (app *uiApp) getTop3(c *gin.Context) {
	c.JSON(200, bookResponse{
		Books:      app.catalog.Top(3),
		TotalCount: 3,
	})
}

func (app *uiApp) getStats(c *gin.Context) {
	stats := app.catalog.Stats()
	c.JSON(200, gin.H{
		"totalBooks":     stats.TotalBooks,
		"totalDownloads": stats.TotalDownloads,
		"activeReaders":  stats.ActiveReaders,
		"downloadsToday": stats.DownloadsToday,
		"display": gin.H{
			"totalDownloads": libpro.FormatCount(stats.TotalDownloads),
			"activeReaders":  libpro.FormatCount(stats.ActiveReaders),
		},
	})
}

// downloadBook records the download and redirects the browser to the
// record's file url. The store treats unknown ids as a no-op, the boundary
// still has to answer something, so it answers 404.
func (app *uiApp) downloadBook(c *gin.Context) {
	id := parseID(c.Query("id"))

	book, ok := app.catalog.RecordDownload(id)
	if !ok {
		app.logger.WithField("id", c.Query("id")).Warning("download for unknown book")
		c.JSON(404, gin.H{
			"msg": "not found",
		})
		return
	}

	downloadsServed.WithLabelValues("single").Inc()
	app.announceDownload(book.Title)

	c.Redirect(302, book.PDFURL)
}

func (app *uiApp) viewBook(c *gin.Context) {
	id := parseID(c.Param("id"))

	if _, ok := app.catalog.RecordView(id); ok {
		viewsRecorded.Inc()
	}
	c.Status(204)
}

func (app *uiApp) uploadBook(c *gin.Context) {
	var in libpro.UploadInput
	if err := c.ShouldBind(&in); err != nil {
		c.JSON(400, gin.H{
			"msg": err.Error(),
		})
		return
	}
	if in.Title == "" {
		c.JSON(400, gin.H{
			"msg": "title is required",
		})
		return
	}

	book := app.catalog.AddUpload(in)
	uploadsReceived.Inc()
	c.JSON(200, book)
}

type selectRequest struct {
	ID       int64 `json:"id" form:"id"`
	Selected bool  `json:"selected" form:"selected"`
}

func (app *uiApp) toggleSelect(c *gin.Context) {
	var req selectRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(400, gin.H{
			"msg": err.Error(),
		})
		return
	}

	app.catalog.ToggleSelect(req.ID, req.Selected)
	c.JSON(200, gin.H{
		"selected": app.catalog.SelectedCount(),
	})
}

func (app *uiApp) batchDownload(c *gin.Context) {
	if app.catalog.SelectedCount() == 0 {
		c.JSON(400, gin.H{
			"msg": "select at least one PDF",
		})
		return
	}

	books := app.catalog.DownloadSelected()
	for _, book := range books {
		downloadsServed.WithLabelValues("batch").Inc()
		app.announceDownload(book.Title)
	}
	app.logger.WithFields(logrus.Fields{
		"count": len(books),
	}).Info("batch download served")

	c.JSON(200, bookResponse{
		Books:      books,
		TotalCount: len(books),
	})
}

func (app *uiApp) getFeed(c *gin.Context) {
	c.JSON(200, app.feed.list())
}

func (app *uiApp) getTheme(c *gin.Context) {
	c.JSON(200, gin.H{
		"theme": app.catalog.Theme(),
	})
}

type themeRequest struct {
	Theme string `json:"theme" form:"theme"`
}

func (app *uiApp) setTheme(c *gin.Context) {
	var req themeRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(400, gin.H{
			"msg": err.Error(),
		})
		return
	}
	app.catalog.SetTheme(req.Theme)
	c.JSON(200, gin.H{
		"theme": app.catalog.Theme(),
	})
}

// parseID maps malformed ids to a value no record carries, keeping the
// unknown-id no-op semantics of the stores.
func parseID(s string) int64 {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return -1
	}
	return id
}
