package deck

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/youruser/deckgen/internal/deckcode"
)

func init() {
	// report json names, e.g. class_set_count instead of ClassCount
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(jsonName)
	}
}

func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	return name
}

const (
	StatusSuccess = "SUCCESS"
	StatusError   = "ERROR"
)

// Status is the outcome of a request, with one message per problem found.
type Status struct {
	Status   string   `json:"status"`
	Messages []string `json:"message"`
}

func (s Status) OK() bool { return s.Status == StatusSuccess }

// Success is the status of an accepted request.
func Success() Status {
	return Status{Status: StatusSuccess, Messages: []string{StatusSuccess}}
}

// Failure wraps messages in an error status.
func Failure(msgs ...string) Status {
	return Status{Status: StatusError, Messages: msgs}
}

// Metadata is the card metadata requests are checked against.
type Metadata interface {
	ClassSlugs() []string
	SetSlugs() []string
	StandardSetSlugs() []string
	// CardCount is the number of distinct collectible cards of class in set.
	CardCount(class, set string) int
}

// Validator checks a Request before any cards are drawn.
type Validator struct {
	Meta Metadata
}

// Validate reports every problem with req rather than stopping at the first.
// Field constraints come from the binding tags; the rest needs Meta.
func (v *Validator) Validate(req Request) Status {
	var msgs []string

	format, err := deckcode.ParseFormat(req.Format)
	if err != nil {
		msgs = append(msgs, fmt.Sprintf("Valid game formats are %s and %s: format given was %q",
			deckcode.Standard, deckcode.Wild, req.Format))
	}

	if fieldMsgs := FieldMessages(binding.Validator.ValidateStruct(req)); len(fieldMsgs) > 0 {
		msgs = append(msgs, fieldMsgs...)
	} else if classes := v.Meta.ClassSlugs(); req.Class == NeutralClass || !slices.Contains(classes, req.Class) {
		msgs = append(msgs, fmt.Sprintf("The requested class %s is not a valid class name: Valid class names are %v",
			req.Class, withoutNeutral(classes)))
	} else {
		msgs = append(msgs, v.validateSets(req, format)...)
	}

	if len(msgs) > 0 {
		return Failure(msgs...)
	}
	return Success()
}

func (v *Validator) validateSets(req Request, format deckcode.Format) []string {
	var msgs []string
	total := 0
	for _, set := range req.Sets {
		total += set.ClassCount + set.NeutralCount
		if set.SetName == AllSets {
			continue
		}
		msgs = append(msgs, v.validateSet(req, format, set)...)
	}
	if total > MaxSize {
		msgs = append(msgs, fmt.Sprintf("Total deck size cannot exceed %d: total size in request was %d", MaxSize, total))
	}
	return msgs
}

func (v *Validator) validateSet(req Request, format deckcode.Format, set SetSpec) []string {
	var msgs []string
	if !slices.Contains(v.Meta.SetSlugs(), set.SetName) {
		msgs = append(msgs, fmt.Sprintf("Deck set name %s is not valid: Valid set names are %v",
			set.SetName, v.Meta.SetSlugs()))
	} else if format == deckcode.Standard && !slices.Contains(v.Meta.StandardSetSlugs(), set.SetName) {
		msgs = append(msgs, fmt.Sprintf("Deck set name %s is not in standard: Game format given was %s",
			set.SetName, deckcode.Standard))
	}
	if len(msgs) > 0 {
		return msgs
	}

	if have := v.Meta.CardCount(req.Class, set.SetName) * MaxCopies; have < set.ClassCount {
		msgs = append(msgs, fmt.Sprintf("Class %s does not have %d class card(s) available in set %s: Only %d were found for the class and set combination (includes duplicates)",
			req.Class, set.ClassCount, set.SetName, have))
	}
	if have := v.Meta.CardCount(NeutralClass, set.SetName) * MaxCopies; have < set.NeutralCount {
		msgs = append(msgs, fmt.Sprintf("Set %s does not have %d %s cards: Only %d were found (includes duplicates)",
			set.SetName, set.NeutralCount, NeutralClass, have))
	}
	return msgs
}

// FieldMessages turns binding failures into one message per field. Any
// other error becomes a single message.
func FieldMessages(err error) []string {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		var rule string
		switch fe.Tag() {
		case "required":
			rule = "must not be empty"
		case "min":
			rule = "must be at least " + fe.Param()
		case "max":
			rule = "must be at most " + fe.Param()
		default:
			rule = "failed " + fe.Tag()
		}
		msgs = append(msgs, fmt.Sprintf("%s: %s", fieldPath(fe.Namespace()), rule))
	}
	return msgs
}

// fieldPath drops the struct name: Request.deck_sets[0].set_name -> deck_sets[0].set_name
func fieldPath(ns string) string {
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func withoutNeutral(classes []string) []string {
	out := make([]string, 0, len(classes))
	for _, c := range classes {
		if c != NeutralClass {
			out = append(out, c)
		}
	}
	return out
}
