package libpro

import (
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l.WithField("test", true)
}

func newTestCatalog(kv KV) *Catalog {
	return NewCatalog(kv, testLogger(), time.Local)
}

func TestRecordDownload(t *testing.T) {
	c := newTestCatalog(NewMemKV())

	before, _ := c.Find(1)
	others := c.List("")

	got, ok := c.RecordDownload(1)
	if !ok {
		t.Fatal("RecordDownload(1) reported not found")
	}
	if got.Downloads != before.Downloads+1 {
		t.Errorf("Downloads = %v, want %v", got.Downloads, before.Downloads+1)
	}

	// every other record keeps its counter
	for _, b := range c.List("") {
		if b.ID == 1 {
			continue
		}
		for _, o := range others {
			if o.ID == b.ID && o.Downloads != b.Downloads {
				t.Errorf("book %d Downloads changed from %v to %v", b.ID, o.Downloads, b.Downloads)
			}
		}
	}
}

func TestRecordDownloadUnknownID(t *testing.T) {
	c := newTestCatalog(NewMemKV())
	before := c.List("")

	if _, ok := c.RecordDownload(999999); ok {
		t.Fatal("RecordDownload on unknown id reported found")
	}

	after := c.List("")
	if len(after) != len(before) {
		t.Fatalf("catalog length changed from %d to %d", len(before), len(after))
	}
	for i := range before {
		if before[i].Downloads != after[i].Downloads {
			t.Errorf("book %d Downloads changed", before[i].ID)
		}
	}
}

func TestRecordViewAddsOnePerCall(t *testing.T) {
	c := newTestCatalog(NewMemKV())

	before, _ := c.Find(1)
	for i := 0; i < 5; i++ {
		if _, ok := c.RecordView(1); !ok {
			t.Fatal("RecordView(1) reported not found")
		}
	}
	after, _ := c.Find(1)
	if after.Views != before.Views+5 {
		t.Errorf("Views = %v, want %v", after.Views, before.Views+5)
	}
}

func TestDailyCounterReuse(t *testing.T) {
	kv := NewMemKV()
	today := time.Now().Format(dateFormat)
	if err := kv.Save(KeyTodayDate, today); err != nil {
		t.Fatal(err)
	}
	if err := kv.Save(KeyTodayCount, 203); err != nil {
		t.Fatal(err)
	}

	c := newTestCatalog(kv)
	if got := c.Stats().DownloadsToday; got != 203 {
		t.Errorf("DownloadsToday = %v, want 203", got)
	}
}

func TestDailyCounterReseed(t *testing.T) {
	kv := NewMemKV()
	if err := kv.Save(KeyTodayDate, "2000-01-01"); err != nil {
		t.Fatal(err)
	}
	if err := kv.Save(KeyTodayCount, 9999); err != nil {
		t.Fatal(err)
	}

	c := newTestCatalog(kv)
	got := c.Stats().DownloadsToday
	if got < 150 || got >= 450 {
		t.Errorf("DownloadsToday = %v, want a reseed in [150, 450)", got)
	}

	// the new date and value are persisted
	var storedDate string
	if found, _ := kv.Load(KeyTodayDate, &storedDate); !found || storedDate != time.Now().Format(dateFormat) {
		t.Errorf("stored date = %q, want today", storedDate)
	}
	var storedCount int
	if found, _ := kv.Load(KeyTodayCount, &storedCount); !found || storedCount != got {
		t.Errorf("stored counter = %v, want %v", storedCount, got)
	}
}

func TestUploadRoundTrip(t *testing.T) {
	kv := NewMemKV()
	c := newTestCatalog(kv)

	uploaded := c.AddUpload(UploadInput{
		Title:    "My Thesis",
		Author:   "A. Student",
		Category: "Science",
		Summary:  "Findings.",
		Pages:    101,
		Size:     "1.1 MB",
		PDFURL:   "https://example.com/thesis.pdf",
	})
	if !uploaded.Uploaded {
		t.Fatal("AddUpload did not mark the record as uploaded")
	}
	if uploaded.Downloads != 0 || uploaded.Views != 0 {
		t.Fatalf("fresh upload has counters %d/%d, want 0/0", uploaded.Downloads, uploaded.Views)
	}

	reloaded := newTestCatalog(kv)
	got, ok := reloaded.Find(uploaded.ID)
	if !ok {
		t.Fatal("uploaded book not present after reload")
	}
	if got != uploaded {
		t.Errorf("reloaded book = %+v, want %+v", got, uploaded)
	}
	if len(reloaded.List("")) != len(Builtins())+1 {
		t.Errorf("catalog length = %d, want %d", len(reloaded.List("")), len(Builtins())+1)
	}
}

func TestBuiltinCountersNotPersisted(t *testing.T) {
	kv := NewMemKV()
	c := newTestCatalog(kv)

	c.RecordDownload(1)
	c.RecordView(1)

	reloaded := newTestCatalog(kv)
	got, _ := reloaded.Find(1)
	want := Builtins()[0]
	if got.Downloads != want.Downloads || got.Views != want.Views {
		t.Errorf("builtin counters survived a reload: %d/%d, want %d/%d",
			got.Downloads, got.Views, want.Downloads, want.Views)
	}
}

func TestUploadedCountersPersisted(t *testing.T) {
	kv := NewMemKV()
	c := newTestCatalog(kv)

	b := c.AddUpload(UploadInput{Title: "Persisted"})
	c.RecordDownload(b.ID)
	c.RecordView(b.ID)

	reloaded := newTestCatalog(kv)
	got, ok := reloaded.Find(b.ID)
	if !ok {
		t.Fatal("uploaded book not present after reload")
	}
	if got.Downloads != 1 || got.Views != 1 {
		t.Errorf("uploaded counters = %d/%d after reload, want 1/1", got.Downloads, got.Views)
	}
}

func TestUploadDefaults(t *testing.T) {
	c := newTestCatalog(NewMemKV())

	b := c.AddUpload(UploadInput{Title: "Bare Minimum", Category: "Business"})
	if b.Author != "Unknown" {
		t.Errorf("Author = %q, want Unknown", b.Author)
	}
	if b.Summary != "User submitted PDF" {
		t.Errorf("Summary = %q", b.Summary)
	}
	if b.Pages < 200 || b.Pages >= 500 {
		t.Errorf("Pages = %d, want a value in [200, 500)", b.Pages)
	}
	if b.Size == "" {
		t.Error("Size is empty")
	}
	if b.PDFURL != DummyPDFURL {
		t.Errorf("PDFURL = %q, want the dummy url", b.PDFURL)
	}
	if b.Icon != DefaultIcon() {
		t.Errorf("Icon = %q, want %q", b.Icon, DefaultIcon())
	}
}

func TestSelectionBatch(t *testing.T) {
	c := newTestCatalog(NewMemKV())

	c.ToggleSelect(1, true)
	c.ToggleSelect(2, true)
	c.ToggleSelect(424242, true) // unknown ids are accepted unvalidated
	if got := c.SelectedCount(); got != 3 {
		t.Fatalf("SelectedCount = %d, want 3", got)
	}
	c.ToggleSelect(2, false)

	done := c.DownloadSelected()
	if len(done) != 1 {
		t.Fatalf("DownloadSelected downloaded %d books, want 1", len(done))
	}
	if done[0].ID != 1 {
		t.Errorf("DownloadSelected hit book %d, want 1", done[0].ID)
	}
	if got := c.SelectedCount(); got != 0 {
		t.Errorf("SelectedCount after batch = %d, want 0", got)
	}

	got, _ := c.Find(1)
	if got.Downloads != Builtins()[0].Downloads+1 {
		t.Errorf("Downloads = %v, want %v", got.Downloads, Builtins()[0].Downloads+1)
	}
}

func TestCorruptUploadedBooksTreatedAsEmpty(t *testing.T) {
	kv := NewMemKV()
	kv.data[KeyUploadedBooks] = []byte(`{not json`)

	c := newTestCatalog(kv)
	if got := len(c.List("")); got != len(Builtins()) {
		t.Errorf("catalog length = %d, want %d", got, len(Builtins()))
	}
}

func TestListCategoryFilter(t *testing.T) {
	c := newTestCatalog(NewMemKV())

	all := c.List("")
	if len(all) != len(Builtins()) {
		t.Fatalf("List(\"\") returned %d books, want %d", len(all), len(Builtins()))
	}
	if len(c.List("all")) != len(all) {
		t.Error("List(\"all\") differs from the unfiltered list")
	}
	for _, b := range c.List("Programming") {
		if b.Category != "Programming" {
			t.Errorf("List(Programming) returned category %q", b.Category)
		}
	}
	if got := len(c.List("Nope")); got != 0 {
		t.Errorf("List on unknown category returned %d books", got)
	}
}

func TestTheme(t *testing.T) {
	c := newTestCatalog(NewMemKV())

	if got := c.Theme(); got != ThemeLight {
		t.Errorf("default theme = %q, want light", got)
	}
	c.SetTheme(ThemeDark)
	if got := c.Theme(); got != ThemeDark {
		t.Errorf("theme = %q, want dark", got)
	}
	c.SetTheme("neon") // outside the enum, ignored
	if got := c.Theme(); got != ThemeDark {
		t.Errorf("theme = %q after invalid set, want dark", got)
	}
}

func TestStats(t *testing.T) {
	c := newTestCatalog(NewMemKV())

	stats := c.Stats()
	if stats.TotalBooks != len(Builtins()) {
		t.Errorf("TotalBooks = %d, want %d", stats.TotalBooks, len(Builtins()))
	}
	wantDownloads := 0
	for _, b := range Builtins() {
		wantDownloads += b.Downloads
	}
	if stats.TotalDownloads != wantDownloads {
		t.Errorf("TotalDownloads = %d, want %d", stats.TotalDownloads, wantDownloads)
	}
	if stats.ActiveReaders < 8750 || stats.ActiveReaders >= 8850 {
		t.Errorf("ActiveReaders = %d, want a value in [8750, 8850)", stats.ActiveReaders)
	}
}
