package catelog

import (
	"unicode"
	"unicode/utf8"

	"gopkg.in/guregu/null.v3"
)

// ContainsFold reports whether substr is within s, ignoring case. Runes are
// compared through simple upper-casing, so the result does not depend on the
// host locale. Bytes that are not valid UTF-8 only match the same byte.
func ContainsFold(s, substr string) bool {
	if substr == "" {
		return true
	}
	for i := 0; i < len(s); {
		if hasPrefixFold(s[i:], substr) {
			return true
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return false
}

func hasPrefixFold(s, prefix string) bool {
	for prefix != "" {
		if s == "" {
			return false
		}
		r1, n1 := utf8.DecodeRuneInString(s)
		r2, n2 := utf8.DecodeRuneInString(prefix)
		bad1 := r1 == utf8.RuneError && n1 == 1
		bad2 := r2 == utf8.RuneError && n2 == 1
		switch {
		case bad1 || bad2:
			if !bad1 || !bad2 || s[0] != prefix[0] {
				return false
			}
		case r1 != r2 && unicode.ToUpper(r1) != unicode.ToUpper(r2):
			return false
		}
		s, prefix = s[n1:], prefix[n2:]
	}
	return true
}

// FilterByGenre returns the albums whose genre contains genre. An empty genre
// matches every album. Albums without a genre never match a non-empty genre.
func FilterByGenre(albums []Album, genre string) []Album {
	return filter(albums, func(a Album) bool {
		return genre == "" || matches(a.Genre, genre)
	})
}

// SearchByArtistOrTitle returns the albums whose artist or title contains
// term. An empty term matches every album.
func SearchByArtistOrTitle(albums []Album, term string) []Album {
	return filter(albums, func(a Album) bool {
		return term == "" || matches(a.Artist, term) || matches(a.AlbumTitle, term)
	})
}

func matches(s null.String, substr string) bool {
	return s.Valid && ContainsFold(s.String, substr)
}

func filter(albums []Album, keep func(Album) bool) []Album {
	res := make([]Album, 0, len(albums))
	for _, a := range albums {
		if keep(a) {
			res = append(res, a)
		}
	}
	return res
}
