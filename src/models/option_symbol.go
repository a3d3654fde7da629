package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
)

type OptionSymbol string

func (s OptionSymbol) NoPrefix() string {
	if strings.HasPrefix(string(s), "O:") {
		return string(s)[2:]
	}

	return string(s)
}

func (s OptionSymbol) Description() (string, error) {
	components, err := NewOptionSymbolComponents(s)
	if err != nil {
		return "", fmt.Errorf("OptionSymbol.Description: failed to parse option symbol: %w", err)
	}

	expiration := components.Expiration.Format("Jan 2 2006")
	strikePrice := fmt.Sprintf("%.2f", components.StrikePrice)

	optionType := "Call"
	if components.OptionType == OptionTypePut {
		optionType = "Put"
	}

	return fmt.Sprintf("%s %s $%s %s", components.Underlying, expiration, strikePrice, optionType), nil
}

// OptionSymbolComponents holds the parsed parts of an OCC option symbol,
// e.g. AAPL240119C00150000.
type OptionSymbolComponents struct {
	Underlying  string
	Expiration  time.Time
	OptionType  OptionType
	StrikePrice float64
	Symbol      OptionSymbol
}

func NewOptionSymbol(option OptionSymbolComponents) (OptionSymbol, error) {
	if err := option.OptionType.Validate(); err != nil {
		return "", fmt.Errorf("NewOptionSymbol: %w", err)
	}

	typeCode := "C"
	if option.OptionType == OptionTypePut {
		typeCode = "P"
	}

	year := option.Expiration.Year() % 100
	month := int(option.Expiration.Month())
	day := option.Expiration.Day()

	strikePrice := fmt.Sprintf("%08d", int(option.StrikePrice*1000))

	ticker := fmt.Sprintf("%s%02d%02d%02d%s%s",
		option.Underlying, year, month, day, typeCode, strikePrice)

	return OptionSymbol(ticker), nil
}

func NewOptionSymbolComponents(symbol OptionSymbol) (*OptionSymbolComponents, error) {
	raw := symbol.NoPrefix()

	// the underlying is the leading run of letters; everything after is fixed width
	i := 0
	for i < len(raw) && unicode.IsLetter(rune(raw[i])) {
		i++
	}

	if i == 0 {
		return nil, fmt.Errorf("NewOptionSymbolComponents: missing underlying in symbol %s", symbol)
	}

	rest := raw[i:]
	if len(rest) != 15 {
		return nil, fmt.Errorf("NewOptionSymbolComponents: unexpected symbol length for %s", symbol)
	}

	expiration, err := time.Parse("060102", rest[:6])
	if err != nil {
		return nil, fmt.Errorf("NewOptionSymbolComponents: failed to parse expiration in %s: %w", symbol, err)
	}

	var optionType OptionType
	switch rest[6] {
	case 'C':
		optionType = OptionTypeCall
	case 'P':
		optionType = OptionTypePut
	default:
		return nil, fmt.Errorf("NewOptionSymbolComponents: invalid option type code %q in %s", rest[6], symbol)
	}

	strikeRaw, err := strconv.Atoi(rest[7:])
	if err != nil {
		return nil, fmt.Errorf("NewOptionSymbolComponents: failed to parse strike in %s: %w", symbol, err)
	}

	return &OptionSymbolComponents{
		Underlying:  raw[:i],
		Expiration:  expiration,
		OptionType:  optionType,
		StrikePrice: float64(strikeRaw) / 1000.0,
		Symbol:      symbol,
	}, nil
}
