package libpro

import (
	"fmt"
	"sort"
)

// DummyPDFURL is served for records that never had a real file attached.
const DummyPDFURL = "https://www.w3.org/WAI/ER/tests/xhtml/testfiles/resources/pdf/dummy.pdf"

// Book represents a single catalog record, either one of the built-ins
// that ship with the library or a user upload.
type Book struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Category  string `json:"category"`
	Summary   string `json:"summary"`
	Pages     int    `json:"pages"`
	Size      string `json:"size"`
	Downloads int    `json:"downloads"`
	Views     int    `json:"views"`
	PDFURL    string `json:"pdfUrl"`
	Icon      string `json:"icon"`
	Uploaded  bool   `json:"uploaded"`
}

// Categories a record can carry. The upload form offers exactly these.
var Categories = []string{
	"Technology",
	"Programming",
	"Science",
	"Business",
}

// Builtins returns a fresh copy of the fixed startup catalog. Counter
// mutations on these records live only for the session and are never
// persisted.
func Builtins() BookList {
	return BookList{
		{ID: 1, Title: "The Future of Artificial Intelligence", Category: "Technology", Summary: "Complete guide to AI, ML, Neural Networks.", Author: "Dr. Alan Turing", Pages: 345, Size: "4.2 MB", Downloads: 15234, Views: 28451, PDFURL: DummyPDFURL, Icon: "fas fa-robot"},
		{ID: 2, Title: "Python Programming Mastery", Category: "Programming", Summary: "Learn Python from beginner to advanced.", Author: "Guido van Rossum", Pages: 892, Size: "8.7 MB", Downloads: 28451, Views: 42109, PDFURL: DummyPDFURL, Icon: "fas fa-code"},
		{ID: 3, Title: "Modern Web Development", Category: "Technology", Summary: "HTML5, CSS3, JavaScript, React, Node.js.", Author: "Michael Chen", Pages: 678, Size: "12.5 MB", Downloads: 21367, Views: 35678, PDFURL: DummyPDFURL, Icon: "fas fa-globe"},
		{ID: 4, Title: "Data Science Handbook", Category: "Science", Summary: "Python, R, SQL, Statistics, ML.", Author: "Dr. Emma Wilson", Pages: 523, Size: "15.3 MB", Downloads: 18453, Views: 27543, PDFURL: DummyPDFURL, Icon: "fas fa-chart-bar"},
		{ID: 5, Title: "Blockchain Revolution", Category: "Technology", Summary: "Bitcoin, Ethereum, Smart Contracts.", Author: "Satoshi Nakamoto", Pages: 412, Size: "6.8 MB", Downloads: 12456, Views: 19876, PDFURL: DummyPDFURL, Icon: "fas fa-link"},
		{ID: 6, Title: "Business Strategy 2024", Category: "Business", Summary: "Digital transformation, market analysis.", Author: "Sarah Johnson", Pages: 289, Size: "3.9 MB", Downloads: 9876, Views: 15432, PDFURL: DummyPDFURL, Icon: "fas fa-chart-line"},
		{ID: 7, Title: "Cybersecurity Essentials", Category: "Technology", Summary: "Network security, ethical hacking.", Author: "Kevin Mitnick", Pages: 567, Size: "9.4 MB", Downloads: 15678, Views: 23456, PDFURL: DummyPDFURL, Icon: "fas fa-shield-alt"},
		{ID: 8, Title: "Cloud Computing AWS", Category: "Technology", Summary: "AWS, Azure, GCP.", Author: "Jeff Bezos", Pages: 734, Size: "18.2 MB", Downloads: 11345, Views: 18976, PDFURL: DummyPDFURL, Icon: "fas fa-cloud"},
	}
}

// BookList is a list of books
type BookList []Book

// Sorted returns a copy of the BookList sorted by the function. The sort is
// stable so equal elements keep their original order.
func (l *BookList) Sorted(sorter func(a, b Book) bool) BookList {
	sorted := make(BookList, len(*l))
	copy(sorted, *l)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorter(sorted[i], sorted[j])
	})
	return sorted
}

// Filtered returns a copy of the BookList filtered by the function
func (l *BookList) Filtered(filterer func(a Book) bool) BookList {
	filtered := BookList{}
	for _, a := range *l {
		if filterer(a) {
			filtered = append(filtered, a)
		}
	}

	return filtered
}

// Top returns the n most downloaded books, ties broken by list order.
func (l *BookList) Top(n int) BookList {
	sorted := l.Sorted(func(a, b Book) bool {
		return a.Downloads > b.Downloads
	})
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

// FormatCount renders a counter the way the stat badges do: 1234 becomes
// "1.2K", 2500000 becomes "2.5M".
func FormatCount(n int) string {
	switch {
	case n >= 1000000:
		return fmt.Sprintf("%.1fM", float64(n)/1000000)
	case n >= 1000:
		return fmt.Sprintf("%.1fK", float64(n)/1000)
	}
	return fmt.Sprintf("%d", n)
}
