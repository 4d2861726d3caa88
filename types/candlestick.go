package types

// Candlestick summarizes the match prices of one market outcome over one
// interval.
type Candlestick struct {
	Open  Amount `json:"open"`
	Close Amount `json:"close"`
	High  Amount `json:"high"`
	Low   Amount `json:"low"`

	// Volume is the contract quantity matched during the interval.
	Volume ContractAmount `json:"volume"`
}

// CandlestickEntry pairs a candlestick with the interval-start timestamp it
// covers. Series are ordered by ascending timestamp.
type CandlestickEntry struct {
	Timestamp   UnixTimestamp `json:"timestamp"`
	Candlestick Candlestick   `json:"candlestick"`
}
