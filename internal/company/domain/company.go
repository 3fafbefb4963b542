package domain

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gosimple/slug"
)

const (
	companyNameMinLen = 2
	companyNameMaxLen = 100
	companySlugMinLen = 2
	companySlugMaxLen = 50
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

type Company struct {
	ID        CompanyID
	Name      CompanyName
	Slug      CompanySlug
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewCompany(name CompanyName, slug CompanySlug) Company {
	now := time.Now().UTC()
	return Company{
		ID:        NewCompanyID(),
		Name:      name,
		Slug:      slug,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

type CompanyName string

// ParseCompanyName trims s and checks its length.
func ParseCompanyName(s string) (CompanyName, error) {
	s = strings.TrimSpace(s)
	if n := utf8.RuneCountInString(s); n < companyNameMinLen || n > companyNameMaxLen {
		return "", ErrInvalidCompanyName
	}
	return CompanyName(s), nil
}

func (n CompanyName) String() string { return string(n) }

type CompanySlug string

// ParseCompanySlug lowercases and trims s before validating it.
func ParseCompanySlug(s string) (CompanySlug, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) < companySlugMinLen || len(s) > companySlugMaxLen || !slugPattern.MatchString(s) {
		return "", ErrInvalidSlug
	}
	return CompanySlug(s), nil
}

// DeriveCompanySlug builds a slug from a company name, transliterating
// non-ASCII characters. The result always passes ParseCompanySlug.
func DeriveCompanySlug(name CompanyName) CompanySlug {
	parts := strings.FieldsFunc(slug.Make(string(name)), func(r rune) bool {
		return r == '-' || r == '_'
	})
	s := strings.Join(parts, "-")
	if s == "" {
		s = "company"
	}
	if len(s) < companySlugMinLen {
		s += "-co"
	}
	if len(s) > companySlugMaxLen {
		s = strings.TrimRight(s[:companySlugMaxLen], "-")
	}

	out, err := ParseCompanySlug(s)
	if err != nil {
		return "company"
	}
	return out
}

func (s CompanySlug) String() string { return string(s) }
