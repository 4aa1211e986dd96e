package sites

import "strings"

// Kind identifies the marketplace a listing URL belongs to.
type Kind int

const (
	Unsupported Kind = iota
	NetMall
	Mercari
	Trefac
	Buyee
	Yahoo
	SecondStreet
)

func (k Kind) String() string {
	switch k {
	case NetMall:
		return "netmall"
	case Mercari:
		return "mercari"
	case Trefac:
		return "trefac"
	case Buyee:
		return "buyee"
	case Yahoo:
		return "yahoo"
	case SecondStreet:
		return "2ndstreet"
	default:
		return "unsupported"
	}
}

type entry struct {
	fragment string
	kind     Kind
}

// Order matters: the first fragment contained in a URL decides its kind.
var registry = []entry{
	{"netmall.hardoff", NetMall},
	{"mercari.com", Mercari},
	{"trefac.jp", Trefac},
	{"buyee.jp", Buyee},
	{"auctions.yahoo.co.jp", Yahoo},
	{"2ndstreet.jp", SecondStreet},
}

// Classify maps a URL to its site kind by substring match.
func Classify(url string) Kind {
	for _, e := range registry {
		if strings.Contains(url, e.fragment) {
			return e.kind
		}
	}
	return Unsupported
}

// Supported reports whether url belongs to any registered site.
func Supported(url string) bool {
	return Classify(url) != Unsupported
}
