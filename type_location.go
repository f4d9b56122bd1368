package costbasis

import "fmt"

// Location identifies where an event happened: an exchange or a blockchain.
type Location int

const (
	External Location = iota
	Kraken
	Poloniex
	Bittrex
	Binance
	Coinbase
	Bitmex
	Gemini
	Ethereum
	Bitcoin
	Blockchain
)

var locationNames = [...]string{
	External:   "external",
	Kraken:     "kraken",
	Poloniex:   "poloniex",
	Bittrex:    "bittrex",
	Binance:    "binance",
	Coinbase:   "coinbase",
	Bitmex:     "bitmex",
	Gemini:     "gemini",
	Ethereum:   "ethereum",
	Bitcoin:    "bitcoin",
	Blockchain: "blockchain",
}

func (l Location) String() string {
	if l < 0 || int(l) >= len(locationNames) {
		return "unknown"
	}
	return locationNames[l]
}

// ParseLocation parses the lower case name of a location.
func ParseLocation(s string) (Location, error) {
	for i, name := range locationNames {
		if name == s {
			return Location(i), nil
		}
	}
	return 0, fmt.Errorf("unknown location: %q", s)
}

func (l Location) MarshalText() ([]byte, error) { return []byte(l.String()), nil }

func (l *Location) UnmarshalText(text []byte) (err error) {
	*l, err = ParseLocation(string(text))
	return err
}
