package libpro

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	readerBase    = 8750
	dateFormat    = "2006-01-02"
	dailySeedMin  = 150
	dailySeedSpan = 300
)

// Catalog owns the combined book list: the fixed built-ins plus the
// user-uploaded subset. Only the uploaded subset is persisted, so counter
// changes on built-ins reset with the process. All mutations on an unknown
// id are deliberate no-ops; the UI around this store is forgiving by
// design.
type Catalog struct {
	mu  sync.Mutex
	kv  KV
	log *logrus.Entry
	loc *time.Location
	rng *rand.Rand

	books    BookList
	selected map[int64]bool

	downloadsToday int
	activeReaders  int
}

// NewCatalog seeds the built-in records, restores the uploaded subset and
// the daily download counter from kv, and reseeds the counter when the
// stored date is not today. A corrupt or missing stored value counts as
// empty.
func NewCatalog(kv KV, logger *logrus.Entry, loc *time.Location) *Catalog {
	if loc == nil {
		loc = time.Local
	}
	c := &Catalog{
		kv:       kv,
		log:      logger,
		loc:      loc,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		books:    Builtins(),
		selected: make(map[int64]bool),
	}

	var uploaded BookList
	found, err := kv.Load(KeyUploadedBooks, &uploaded)
	if err != nil {
		c.log.WithField("err", err).Warning("could not restore uploaded books, starting empty")
	}
	if found && err == nil {
		c.books = append(c.books, uploaded...)
	}

	c.loadDailyStats()
	c.activeReaders = readerBase + c.rng.Intn(100)

	return c
}

// loadDailyStats reuses the persisted daily counter when its date is still
// today, otherwise reseeds it to a value in [150, 450) and persists both.
func (c *Catalog) loadDailyStats() {
	today := time.Now().In(c.loc).Format(dateFormat)

	var storedDate string
	var storedCount int
	dateOK, err := c.kv.Load(KeyTodayDate, &storedDate)
	if err != nil {
		c.log.WithField("err", err).Warning("could not read stored counter date")
		dateOK = false
	}
	countOK, err := c.kv.Load(KeyTodayCount, &storedCount)
	if err != nil {
		c.log.WithField("err", err).Warning("could not read stored daily counter")
		countOK = false
	}

	if dateOK && countOK && storedDate == today {
		c.downloadsToday = storedCount
		return
	}

	c.downloadsToday = dailySeedMin + c.rng.Intn(dailySeedSpan)
	if err := c.kv.Save(KeyTodayDate, today); err != nil {
		c.log.WithField("err", err).Warning("could not persist counter date")
	}
	c.persistToday()
}

// List returns the records in insertion order, built-ins first. An empty
// category (or "all") returns everything, anything else is an exact label
// match.
func (c *Catalog) List(category string) BookList {
	c.mu.Lock()
	defer c.mu.Unlock()
	if category == "" || category == "all" {
		out := make(BookList, len(c.books))
		copy(out, c.books)
		return out
	}
	return c.books.Filtered(func(b Book) bool {
		return b.Category == category
	})
}

// Find returns a copy of the record with the given id.
func (c *Catalog) Find(id int64) (Book, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.index(id)
	if i < 0 {
		return Book{}, false
	}
	return c.books[i], true
}

// RecordDownload bumps the download counter of the record and the daily
// counter and persists both. The returned copy carries the PDF url the
// caller should redirect to. Unknown ids are a no-op.
func (c *Catalog) RecordDownload(id int64) (Book, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.index(id)
	if i < 0 {
		return Book{}, false
	}
	c.books[i].Downloads++
	c.downloadsToday++
	c.persistUploaded()
	c.persistToday()
	c.log.WithFields(logrus.Fields{
		"id":    id,
		"title": c.books[i].Title,
	}).Info("book was downloaded")
	return c.books[i], true
}

// RecordView bumps the view counter, one per call, no upper bound.
// Unknown ids are a no-op.
func (c *Catalog) RecordView(id int64) (Book, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.index(id)
	if i < 0 {
		return Book{}, false
	}
	c.books[i].Views++
	c.persistUploaded()
	return c.books[i], true
}

// AddUpload appends a user-submitted record with zeroed counters and
// persists the uploaded subset. The id is derived from the current time;
// when two uploads land in the same millisecond the id is bumped until it
// no longer collides.
func (c *Catalog) AddUpload(in UploadInput) Book {
	c.mu.Lock()
	defer c.mu.Unlock()

	if in.Author == "" {
		in.Author = "Unknown"
	}
	if in.Summary == "" {
		in.Summary = "User submitted PDF"
	}
	if in.Pages <= 0 {
		in.Pages = 200 + c.rng.Intn(300)
	}
	if in.Size == "" {
		in.Size = randomSizeLabel(c.rng)
	}
	if in.PDFURL == "" {
		in.PDFURL = DummyPDFURL
	}

	id := time.Now().UnixMilli()
	for c.index(id) >= 0 {
		id++
	}

	b := Book{
		ID:       id,
		Title:    in.Title,
		Author:   in.Author,
		Category: in.Category,
		Summary:  in.Summary,
		Pages:    in.Pages,
		Size:     in.Size,
		PDFURL:   in.PDFURL,
		Icon:     DefaultIcon(),
		Uploaded: true,
	}
	c.books = append(c.books, b)
	c.persistUploaded()
	c.log.WithFields(logrus.Fields{
		"id":    b.ID,
		"title": b.Title,
	}).Info("book was uploaded")
	return b
}

// ToggleSelect marks or unmarks a record for batch download. The id is not
// validated against the catalog.
func (c *Catalog) ToggleSelect(id int64, selected bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if selected {
		c.selected[id] = true
	} else {
		delete(c.selected, id)
	}
}

func (c *Catalog) SelectedCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.selected)
}

// DownloadSelected records a download for every selected record and clears
// the selection, also when some of the ids no longer resolve.
func (c *Catalog) DownloadSelected() BookList {
	c.mu.Lock()
	ids := make([]int64, 0, len(c.selected))
	for id := range c.selected {
		ids = append(ids, id)
	}
	c.selected = make(map[int64]bool)
	c.mu.Unlock()

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var done BookList
	for _, id := range ids {
		if b, ok := c.RecordDownload(id); ok {
			done = append(done, b)
		}
	}
	return done
}

// Top returns the n most downloaded records, ties broken by insertion
// order.
func (c *Catalog) Top(n int) BookList {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.books.Top(n)
}

// Random picks any record, used by the live feed ticker. It never touches
// the counters.
func (c *Catalog) Random() (Book, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.books) == 0 {
		return Book{}, false
	}
	return c.books[c.rng.Intn(len(c.books))], true
}

func (c *Catalog) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0
	for _, b := range c.books {
		total += b.Downloads
	}
	return Stats{
		TotalBooks:     len(c.books),
		TotalDownloads: total,
		ActiveReaders:  c.activeReaders,
		DownloadsToday: c.downloadsToday,
	}
}

// Theme returns the persisted display theme, light when nothing is stored.
func (c *Catalog) Theme() string {
	var theme string
	found, err := c.kv.Load(KeyTheme, &theme)
	if err != nil || !found {
		return ThemeLight
	}
	if theme != ThemeLight && theme != ThemeDark {
		return ThemeLight
	}
	return theme
}

// SetTheme persists the display theme. Values outside the enum are
// ignored.
func (c *Catalog) SetTheme(theme string) {
	if theme != ThemeLight && theme != ThemeDark {
		return
	}
	if err := c.kv.Save(KeyTheme, theme); err != nil {
		c.log.WithField("err", err).Warning("could not persist theme")
	}
}

// index returns the position of id in the catalog, -1 when absent.
// Callers hold the lock.
func (c *Catalog) index(id int64) int {
	for i := range c.books {
		if c.books[i].ID == id {
			return i
		}
	}
	return -1
}

// persistUploaded writes the uploaded subset. Persistence is best effort,
// a failed write is logged and dropped. Callers hold the lock.
func (c *Catalog) persistUploaded() {
	uploaded := c.books.Filtered(func(b Book) bool {
		return b.Uploaded
	})
	if err := c.kv.Save(KeyUploadedBooks, uploaded); err != nil {
		c.log.WithField("err", err).Warning("could not persist uploaded books")
	}
}

func (c *Catalog) persistToday() {
	if err := c.kv.Save(KeyTodayCount, c.downloadsToday); err != nil {
		c.log.WithField("err", err).Warning("could not persist daily counter")
	}
}

func randomSizeLabel(rng *rand.Rand) string {
	return fmt.Sprintf("%.1f MB", rng.Float64()*10+2)
}
