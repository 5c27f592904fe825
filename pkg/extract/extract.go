// Package extract turns one raw record of classification text into an
// ordered sequence of per-rank tuples (name, optional rank, optional
// info fields).
//
// A record is first split into rank-segments by one or more separators
// (literal strings or regular expressions, applied jointly as
// alternative split points). Without separators, the extraction
// pattern is matched repeatedly against the whole record and every
// non-overlapping match yields one segment. Within a segment the
// extraction pattern (if present) assigns each capture group's text to
// its declared role.
//
// Extraction is a pure function: configuration errors surface from
// New(), before any record is processed; a record that produces zero
// segments yields an empty path, not an error.
package extract

import (
	"regexp"
	"strings"
)

// Tuple is one rank-level element of a classification path.
type Tuple struct {
	Name string
	Rank string
	Info map[string]string
}

// Path is an ordered root-to-leaf sequence of tuples produced from
// one record.
type Path []Tuple

// Names returns the ordered taxon names of the path.
func (p Path) Names() []string {
	res := make([]string, len(p))
	for i, t := range p {
		res[i] = t.Name
	}
	return res
}

// Config describes how raw records are turned into paths.
type Config struct {
	// Separators are split points between rank-segments. All entries
	// act as alternatives.
	Separators []string

	// SeparatorRegexp treats Separators as regular expressions instead
	// of literal strings.
	SeparatorRegexp bool

	// Regexp is the extraction pattern. Each capture group's text is
	// assigned a role from Roles.
	Regexp string

	// Roles assigns one role per capture group of Regexp, in order.
	// Required when Regexp has capture groups; exactly one role must
	// be the taxon name.
	Roles []Role

	// NameNormalizer, when set, is applied to every extracted taxon
	// name. Used to canonicalize scientific names.
	NameNormalizer func(string) string
}

// Extractor converts raw records into paths. Safe for concurrent use:
// it holds no mutable state after construction.
type Extractor struct {
	sep       *regexp.Regexp
	re        *regexp.Regexp
	roles     []Role
	normalize func(string) string
}

// New validates the configuration and returns an Extractor.
// All configuration errors are fatal and reported here, before any
// record is processed.
func New(cfg Config) (*Extractor, error) {
	res := &Extractor{normalize: cfg.NameNormalizer}

	if len(cfg.Separators) > 0 {
		sep, err := compileSeparators(cfg.Separators, cfg.SeparatorRegexp)
		if err != nil {
			return nil, err
		}
		res.sep = sep
	}

	if cfg.Regexp != "" {
		re, err := regexp.Compile(cfg.Regexp)
		if err != nil {
			return nil, BadRegexpError(cfg.Regexp, err)
		}
		if err = validateRoles(re, cfg.Roles); err != nil {
			return nil, err
		}
		res.re = re
		res.roles = cfg.Roles
	} else if len(cfg.Roles) > 0 {
		return nil, RoleCountError(0, len(cfg.Roles))
	}

	return res, nil
}

// compileSeparators joins all separators into a single alternation.
func compileSeparators(seps []string, isRegexp bool) (*regexp.Regexp, error) {
	parts := make([]string, len(seps))
	for i, s := range seps {
		if isRegexp {
			if _, err := regexp.Compile(s); err != nil {
				return nil, BadRegexpError(s, err)
			}
			parts[i] = "(?:" + s + ")"
		} else {
			parts[i] = regexp.QuoteMeta(s)
		}
	}
	return regexp.Compile(strings.Join(parts, "|"))
}

// validateRoles checks the role list against the pattern's capture
// groups: counts must match and exactly one role is the taxon name.
func validateRoles(re *regexp.Regexp, roles []Role) error {
	groups := re.NumSubexp()
	if groups != len(roles) {
		return RoleCountError(groups, len(roles))
	}

	var names int
	for _, r := range roles {
		if r.Kind == NameRole {
			names++
		}
	}
	switch {
	case groups > 0 && names == 0:
		return NoNameRoleError()
	case names > 1:
		return DuplicateNameRoleError()
	}
	return nil
}

// Path extracts the classification path of one raw record.
// A record producing zero segments yields an empty path.
func (ex *Extractor) Path(record string) Path {
	if ex.sep == nil && ex.re != nil {
		return ex.scanPath(record)
	}

	var segments []string
	if ex.sep == nil {
		segments = []string{record}
	} else {
		segments = ex.sep.Split(record, -1)
	}

	var res Path
	for _, seg := range segments {
		tuple, ok := ex.segmentTuple(seg)
		if !ok {
			continue
		}
		res = append(res, tuple)
	}
	return res
}

// scanPath implements no-separator mode: every non-overlapping match
// of the extraction pattern against the whole record is one segment.
func (ex *Extractor) scanPath(record string) Path {
	matches := ex.re.FindAllStringSubmatch(record, -1)
	var res Path
	for _, m := range matches {
		tuple, ok := ex.captureTuple(m)
		if !ok {
			continue
		}
		res = append(res, tuple)
	}
	return res
}

// segmentTuple converts one rank-segment into a tuple. Returns false
// for segments that yield no taxon name.
func (ex *Extractor) segmentTuple(segment string) (Tuple, bool) {
	segment = strings.TrimSpace(segment)
	if segment == "" {
		return Tuple{}, false
	}

	if ex.re == nil {
		return ex.newTuple(segment, "", nil), true
	}

	m := ex.re.FindStringSubmatch(segment)
	if m == nil {
		return Tuple{}, false
	}
	return ex.captureTuple(m)
}

// captureTuple assigns each capture's text to its declared role.
func (ex *Extractor) captureTuple(match []string) (Tuple, bool) {
	if len(ex.roles) == 0 {
		// Pattern without groups: the whole match is the name.
		name := strings.TrimSpace(match[0])
		if name == "" {
			return Tuple{}, false
		}
		return ex.newTuple(name, "", nil), true
	}

	var name, rank string
	var info map[string]string
	for i, role := range ex.roles {
		val := strings.TrimSpace(match[i+1])
		switch role.Kind {
		case NameRole:
			name = val
		case RankRole:
			rank = val
		case InfoRole:
			if info == nil {
				info = make(map[string]string)
			}
			info[role.Field] = val
		}
	}
	if name == "" {
		return Tuple{}, false
	}
	return ex.newTuple(name, rank, info), true
}

func (ex *Extractor) newTuple(
	name, rank string,
	info map[string]string,
) Tuple {
	if ex.normalize != nil {
		if norm := ex.normalize(name); norm != "" {
			name = norm
		}
	}
	return Tuple{Name: name, Rank: rank, Info: info}
}
