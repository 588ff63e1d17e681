package content

import (
	"errors"
	"fmt"

	"clipctl/pkg/cfhtml"
	"clipctl/pkg/clipboard"
	"clipctl/pkg/logger"
	"clipctl/pkg/utils"
)

const previewLength = 20

// ErrHTMLWithoutValue is returned when HTML output is requested without any
// value to encode.
var ErrHTMLWithoutValue = errors.New("cannot specify --as-html when no value is set")

// Resolver expands a user supplied path into absolute paths.
type Resolver interface {
	Resolve(pattern string, literal bool) ([]string, error)
}

// Gate decides whether the described action runs. A nil Gate always allows.
type Gate func(action string) (bool, error)

// Operation names a kind of clipboard write.
type Operation string

const (
	OperationSet    Operation = "set"
	OperationAppend Operation = "append"
	OperationClear  Operation = "clear"
)

// Write describes a completed clipboard write.
type Write struct {
	Operation Operation
	Format    string
	Preview   string
	Items     int
	Bytes     int
}

// SetResult reports what a set operation did.
type SetResult struct {
	Action string
	// Applied is false when the gate declined the action or there was
	// nothing to write.
	Applied bool
	// Appended is false for append requests that were downgraded.
	Appended bool
	Items    []string
	// Skipped holds per-path resolution failures.
	Skipped []error
}

type TextRequest struct {
	Values []string
	Append bool
	AsHTML bool
}

type FilesRequest struct {
	Paths   []string
	Append  bool
	Literal bool
}

// Setter writes to a clipboard backend.
type Setter struct {
	Backend  clipboard.Backend
	Resolver Resolver
	// LineBreak joins text values. Empty means "\n".
	LineBreak     string
	ShouldProcess Gate
	// OnWrite is called after every successful write.
	OnWrite func(Write)
}

func (s *Setter) lineBreak() string {
	if s.LineBreak == "" {
		return "\n"
	}
	return s.LineBreak
}

func (s *Setter) allow(action string) (bool, error) {
	if s.ShouldProcess == nil {
		return true, nil
	}
	return s.ShouldProcess(action)
}

func (s *Setter) record(w Write) {
	if s.OnWrite != nil {
		s.OnWrite(w)
	}
}

// Clear empties the clipboard.
func (s *Setter) Clear() (*SetResult, error) {
	res := &SetResult{Action: "Clipboard cleared"}
	ok, err := s.allow(res.Action)
	if err != nil || !ok {
		return res, err
	}
	if err := s.Backend.Clear(); err != nil {
		return nil, fmt.Errorf("clear clipboard: %w", err)
	}
	res.Applied = true
	s.record(Write{Operation: OperationClear})
	return res, nil
}

// SetText publishes text values, one per line. With no values and no append
// the clipboard is cleared.
func (s *Setter) SetText(req TextRequest) (*SetResult, error) {
	if req.AsHTML && len(req.Values) == 0 {
		return nil, ErrHTMLWithoutValue
	}
	if len(req.Values) == 0 && !req.Append {
		return s.Clear()
	}

	existing, hasExisting := "", false
	if req.Append {
		ok, err := s.Backend.ContainsText()
		if err != nil {
			return nil, fmt.Errorf("check clipboard text: %w", err)
		}
		if ok {
			existing, err = s.Backend.GetText(clipboard.FormatUnicodeText)
			if err != nil {
				return nil, fmt.Errorf("read clipboard text: %w", err)
			}
			hasExisting = true
		}
	}

	text, appended := AccumulateText(existing, hasExisting, req.Values, req.Append, s.lineBreak())
	if req.Append && !appended {
		logger.Info().Msg("No appendable clipboard content was found.")
	}

	preview := ""
	if len(req.Values) > 0 {
		preview = utils.Preview(req.Values[0], previewLength)
	}
	verb := "Setting"
	op := OperationSet
	if req.Append {
		verb = "Appending"
		op = OperationAppend
	}
	res := &SetResult{
		Action:   fmt.Sprintf("%s the following content: %s", verb, preview),
		Appended: appended,
	}
	logger.Info().Msg(res.Action)

	ok, err := s.allow(res.Action)
	if err != nil || !ok {
		return res, err
	}

	payload, format := text, clipboard.FormatUnicodeText
	if req.AsHTML {
		payload, err = cfhtml.Encode(text)
		if err != nil {
			return nil, err
		}
		format = clipboard.FormatHTML
	}

	if err := s.Backend.Clear(); err != nil {
		return nil, fmt.Errorf("clear clipboard: %w", err)
	}
	if err := s.Backend.SetText(payload, format); err != nil {
		return nil, fmt.Errorf("set clipboard text: %w", err)
	}

	res.Applied = true
	s.record(Write{
		Operation: op,
		Format:    format.String(),
		Preview:   preview,
		Items:     len(req.Values),
		Bytes:     len(payload),
	})
	return res, nil
}

// SetFiles publishes a file-drop list. Paths that fail to resolve are logged
// and reported in SetResult.Skipped while the remaining paths are still
// written.
func (s *Setter) SetFiles(req FilesRequest) (*SetResult, error) {
	set := NewFileSet()
	appending := req.Append
	if appending {
		ok, err := s.Backend.ContainsFileDropList()
		if err != nil {
			return nil, fmt.Errorf("check clipboard file list: %w", err)
		}
		if !ok {
			logger.Info().Msg("No appendable clipboard content was found.")
			appending = false
		} else {
			existing, err := s.Backend.GetFileDropList()
			if err != nil {
				return nil, fmt.Errorf("read clipboard file list: %w", err)
			}
			for _, p := range existing {
				set.Add(p)
			}
		}
	}
	existingCount := set.Len()

	res := &SetResult{Appended: appending}
	for _, pattern := range req.Paths {
		resolved, err := s.Resolver.Resolve(pattern, req.Literal)
		if err != nil {
			logger.Error().Err(err).Str("path", pattern).Msg("Path resolution failed")
			res.Skipped = append(res.Skipped, err)
			continue
		}
		for _, p := range resolved {
			set.Add(p)
		}
	}

	if set.Len() == 0 {
		return res, nil
	}

	added := set.Len() - existingCount
	switch {
	case added == 1 && appending:
		res.Action = fmt.Sprintf("Append single file '%s' to the clipboard.", set.Last())
	case added == 1:
		res.Action = fmt.Sprintf("Set single file '%s' to the clipboard.", set.First())
	case appending:
		res.Action = fmt.Sprintf("Append %d files to the clipboard.", added)
	default:
		res.Action = fmt.Sprintf("Set %d files to the clipboard.", set.Len())
	}
	logger.Info().Msg(res.Action)

	ok, err := s.allow(res.Action)
	if err != nil || !ok {
		return res, err
	}

	paths := set.Paths()
	if err := s.Backend.Clear(); err != nil {
		return nil, fmt.Errorf("clear clipboard: %w", err)
	}
	if err := s.Backend.SetFileDropList(paths); err != nil {
		return nil, fmt.Errorf("set clipboard file list: %w", err)
	}

	res.Applied = true
	res.Items = paths
	op := OperationSet
	if appending {
		op = OperationAppend
	}
	bytes := 0
	for _, p := range paths {
		bytes += len(p)
	}
	s.record(Write{
		Operation: op,
		Format:    "filedroplist",
		Preview:   utils.Preview(paths[len(paths)-1], previewLength*2),
		Items:     len(paths),
		Bytes:     bytes,
	})
	return res, nil
}
