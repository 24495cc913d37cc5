package types

import "context"

// PairClassifier decides whether a trading pair gets the primary taker fee
// distribution.
type PairClassifier interface {
	IsPrimaryAssetPair(ctx context.Context, denomA, denomB string) bool
}

// BaseDenomClassifier treats every pair that involves BaseDenom as primary.
type BaseDenomClassifier struct {
	BaseDenom string
}

var _ PairClassifier = BaseDenomClassifier{}

func (c BaseDenomClassifier) IsPrimaryAssetPair(_ context.Context, denomA, denomB string) bool {
	return c.BaseDenom != "" && (denomA == c.BaseDenom || denomB == c.BaseDenom)
}
