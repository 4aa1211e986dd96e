package extract

// Values written in place of real data. Failures are reported as data so
// they stay visible in the sheet.
const (
	TitleError        = "title error"
	PriceError        = "price error"
	MercariTitleError = "unknown titles"
	MercariPriceError = "unknown price"
	YahooTitleError   = "title is not found"

	UnknownTitle = "Unknown Title"
	UnknownModel = "Unknown Model"
	UnknownPrice = "Unknown Price"

	Untitled = "Untitled"
	NoPrice  = "No Price"
)

// State tracks one URL through extraction.
type State int

const (
	Pending State = iota
	Navigating
	WaitingForSelector
	Extracted
	Failed
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Navigating:
		return "navigating"
	case WaitingForSelector:
		return "waiting_for_selector"
	case Extracted:
		return "extracted"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result is the outcome of one extraction. Label is a title or a model
// number depending on the site.
type Result struct {
	Label string
	Price string
	State State
}

// Failed reports whether the values are error sentinels.
func (r Result) Failed() bool {
	return r.State == Failed
}
