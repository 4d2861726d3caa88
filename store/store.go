package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/orderedcode"
	dbm "github.com/tendermint/tm-db"

	"github.com/windvane/windvane/types"
)

/*
Store is the local cache of federation state plus the client's own
bookkeeping. There are four groups of information stored:
 - Order slots:  one record per allocated order id (reserved or filled),
   with by-market, non-zero and needs-update indexes derived from them
 - Markets:      market records and their cached payout-control proposals
 - Bookmarks:    markets the user saved, and local names for payout controls
 - Control idx:  markets created by this client's payout control, keyed by
   creation time so they list newest-first

The cache is advisory: every record can be rebuilt from the federation and
the root seed. Multi-key updates go through a single batch, which is the only
atomicity boundary the store offers.
*/
type Store struct {
	db dbm.DB
}

// New returns a Store backed by db.
func New(db dbm.DB) *Store {
	return &Store{db: db}
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// indexValue marks presence in key-only indexes.
var indexValue = []byte{0x01}

//---------------------------------- ORDERS ----------------------------------

// OrderSlot returns the slot at id, or nil if the id has never been used.
func (s *Store) OrderSlot(id types.OrderID) (*types.OrderSlot, error) {
	bz, err := s.db.Get(orderSlotKey(id))
	if err != nil {
		return nil, fmt.Errorf("read order slot %d: %w", id, err)
	}
	if bz == nil {
		return nil, nil
	}

	slot := new(types.OrderSlot)
	if err := json.Unmarshal(bz, slot); err != nil {
		return nil, fmt.Errorf("corrupt order slot %d: %w", id, err)
	}
	return slot, nil
}

// Order returns the cached order at id, or nil if the slot is missing or
// still reserved.
func (s *Store) Order(id types.OrderID) (*types.Order, error) {
	slot, err := s.OrderSlot(id)
	if err != nil || slot == nil {
		return nil, err
	}
	return slot.Order, nil
}

// ReserveOrderSlot writes a reserved slot at id so no concurrent operation
// can hand out the same id. It fails if the slot is already occupied; the
// caller serializes allocation.
func (s *Store) ReserveOrderSlot(id types.OrderID) error {
	existing, err := s.OrderSlot(id)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("order slot %d is already occupied", id)
	}

	bz, err := json.Marshal(types.ReservedSlot())
	if err != nil {
		return fmt.Errorf("encode order slot %d: %w", id, err)
	}
	if err := s.db.SetSync(orderSlotKey(id), bz); err != nil {
		return fmt.Errorf("write order slot %d: %w", id, err)
	}
	return nil
}

// ReleaseOrderSlot removes a reserved slot so the id can be allocated again
// after a failed submission. Releasing a missing slot is a no-op; releasing
// a filled slot is refused, confirmed ids are never reused.
func (s *Store) ReleaseOrderSlot(id types.OrderID) error {
	slot, err := s.OrderSlot(id)
	if err != nil {
		return err
	}
	if slot == nil {
		return nil
	}
	if slot.Order != nil {
		return fmt.Errorf("order slot %d holds a confirmed order", id)
	}

	if err := s.db.DeleteSync(orderSlotKey(id)); err != nil {
		return fmt.Errorf("delete order slot %d: %w", id, err)
	}
	return nil
}

// SaveOrder writes an order into its slot and refreshes every derived index
// in one batch: the by-market index always holds the id, the non-zero index
// holds it exactly while any balance is nonzero, and a pending needs-update
// mark is cleared because the caller is persisting the authoritative value.
func (s *Store) SaveOrder(id types.OrderID, order *types.Order) error {
	if order == nil {
		return errors.New("nil order")
	}
	bz, err := json.Marshal(types.FilledSlot(order))
	if err != nil {
		return fmt.Errorf("encode order %d: %w", id, err)
	}

	batch := s.db.NewBatch()
	defer batch.Close()

	if err := batch.Set(orderSlotKey(id), bz); err != nil {
		return err
	}
	if err := batch.Set(orderIndexKey(prefixOrderByMarket, order.Market, order.Outcome, id), indexValue); err != nil {
		return err
	}

	nonZeroKey := orderIndexKey(prefixNonZeroOrderByMarket, order.Market, order.Outcome, id)
	if order.NonZero() {
		err = batch.Set(nonZeroKey, indexValue)
	} else {
		err = batch.Delete(nonZeroKey)
	}
	if err != nil {
		return err
	}

	if err := batch.Delete(orderNeedsUpdateKey(id)); err != nil {
		return err
	}
	if err := batch.WriteSync(); err != nil {
		return fmt.Errorf("write order %d: %w", id, err)
	}
	return nil
}

// NextOrderID returns one past the highest id ever allocated, reserved slots
// included, or 0 for an empty store. The caller must serialize allocation.
func (s *Store) NextOrderID() (types.OrderID, error) {
	start, end := prefixRange(prefixOrderSlot)
	iter, err := s.db.ReverseIterator(start, end)
	if err != nil {
		return 0, fmt.Errorf("iterate order slots: %w", err)
	}
	defer iter.Close()

	if iter.Valid() {
		id, err := decodeOrderSlotKey(iter.Key())
		if err != nil {
			return 0, err
		}
		return id + 1, nil
	}
	if err := iter.Error(); err != nil {
		return 0, fmt.Errorf("iterate order slots: %w", err)
	}
	return 0, nil
}

// OrderIDs returns every allocated order id in ascending order, optionally
// narrowed to one market or one market outcome.
func (s *Store) OrderIDs(market *types.OutPoint, outcome *types.Outcome) ([]types.OrderID, error) {
	return s.scanOrderIndex(prefixOrderByMarket, market, outcome)
}

// NonZeroOrderIDs returns the ids of orders with any nonzero balance in
// ascending order, optionally narrowed to one market or one market outcome.
// Ascending id order is what makes sell sourcing reproducible.
func (s *Store) NonZeroOrderIDs(market *types.OutPoint, outcome *types.Outcome) ([]types.OrderID, error) {
	return s.scanOrderIndex(prefixNonZeroOrderByMarket, market, outcome)
}

func (s *Store) scanOrderIndex(prefix int64, market *types.OutPoint, outcome *types.Outcome) ([]types.OrderID, error) {
	if outcome != nil && market == nil {
		return nil, errors.New("outcome filter requires a market filter")
	}

	items := []interface{}{prefix}
	if market != nil {
		items = append(items, string(market.TxID[:]), int64(market.Index))
		if outcome != nil {
			items = append(items, int64(*outcome))
		}
	}

	start, end := prefixRange(items...)
	iter, err := s.db.Iterator(start, end)
	if err != nil {
		return nil, fmt.Errorf("iterate order index: %w", err)
	}
	defer iter.Close()

	var ids []types.OrderID
	for ; iter.Valid(); iter.Next() {
		id, err := decodeOrderIndexKey(prefix, iter.Key())
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("iterate order index: %w", err)
	}
	return ids, nil
}

// MarkOrdersDirty flags ids whose cached value may have been changed by an
// accepted operation and needs a refresh from the federation.
func (s *Store) MarkOrdersDirty(ids ...types.OrderID) error {
	if len(ids) == 0 {
		return nil
	}

	batch := s.db.NewBatch()
	defer batch.Close()

	for _, id := range ids {
		if err := batch.Set(orderNeedsUpdateKey(id), indexValue); err != nil {
			return err
		}
	}
	if err := batch.WriteSync(); err != nil {
		return fmt.Errorf("mark orders dirty: %w", err)
	}
	return nil
}

// DirtyOrders returns the ids currently flagged as needing an update, in
// ascending order. Flags are cleared by SaveOrder, not here.
func (s *Store) DirtyOrders() ([]types.OrderID, error) {
	start, end := prefixRange(prefixOrderNeedsUpdate)
	iter, err := s.db.Iterator(start, end)
	if err != nil {
		return nil, fmt.Errorf("iterate dirty orders: %w", err)
	}
	defer iter.Close()

	var ids []types.OrderID
	for ; iter.Valid(); iter.Next() {
		id, err := decodeOrderNeedsUpdateKey(iter.Key())
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("iterate dirty orders: %w", err)
	}
	return ids, nil
}

//---------------------------------- MARKETS ---------------------------------

// Market returns the cached market at ref, or nil when not cached.
func (s *Store) Market(ref types.OutPoint) (*types.Market, error) {
	bz, err := s.db.Get(marketKey(ref))
	if err != nil {
		return nil, fmt.Errorf("read market %s: %w", ref, err)
	}
	if bz == nil {
		return nil, nil
	}

	market := new(types.Market)
	if err := json.Unmarshal(bz, market); err != nil {
		return nil, fmt.Errorf("corrupt market %s: %w", ref, err)
	}
	return market, nil
}

// SaveMarket caches a market record fetched from the federation.
func (s *Store) SaveMarket(ref types.OutPoint, market *types.Market) error {
	if market == nil {
		return errors.New("nil market")
	}
	bz, err := json.Marshal(market)
	if err != nil {
		return fmt.Errorf("encode market %s: %w", ref, err)
	}
	if err := s.db.SetSync(marketKey(ref), bz); err != nil {
		return fmt.Errorf("write market %s: %w", ref, err)
	}
	return nil
}

// PayoutControlProposals returns the cached payout proposals for a market,
// keyed by payout-control identity.
func (s *Store) PayoutControlProposals(ref types.OutPoint) (map[string][]types.Amount, error) {
	start, end := prefixRange(prefixPayoutProposal, string(ref.TxID[:]), int64(ref.Index))
	iter, err := s.db.Iterator(start, end)
	if err != nil {
		return nil, fmt.Errorf("iterate proposals for %s: %w", ref, err)
	}
	defer iter.Close()

	proposals := make(map[string][]types.Amount)
	for ; iter.Valid(); iter.Next() {
		control, err := decodePayoutProposalKey(iter.Key())
		if err != nil {
			return nil, err
		}
		var payouts []types.Amount
		if err := json.Unmarshal(iter.Value(), &payouts); err != nil {
			return nil, fmt.Errorf("corrupt proposal for %s by %s: %w", ref, control, err)
		}
		proposals[control] = payouts
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("iterate proposals for %s: %w", ref, err)
	}
	return proposals, nil
}

// ReplacePayoutControlProposals swaps the cached proposal set of a market
// for the authoritative one, in a single batch.
func (s *Store) ReplacePayoutControlProposals(ref types.OutPoint, proposals map[string][]types.Amount) error {
	start, end := prefixRange(prefixPayoutProposal, string(ref.TxID[:]), int64(ref.Index))
	iter, err := s.db.Iterator(start, end)
	if err != nil {
		return fmt.Errorf("iterate proposals for %s: %w", ref, err)
	}

	var stale [][]byte
	for ; iter.Valid(); iter.Next() {
		key := make([]byte, len(iter.Key()))
		copy(key, iter.Key())
		stale = append(stale, key)
	}
	err = iter.Error()
	iter.Close()
	if err != nil {
		return fmt.Errorf("iterate proposals for %s: %w", ref, err)
	}

	batch := s.db.NewBatch()
	defer batch.Close()

	for _, key := range stale {
		if err := batch.Delete(key); err != nil {
			return err
		}
	}
	for control, payouts := range proposals {
		bz, err := json.Marshal(payouts)
		if err != nil {
			return fmt.Errorf("encode proposal by %s: %w", control, err)
		}
		if err := batch.Set(payoutProposalKey(ref, control), bz); err != nil {
			return err
		}
	}
	if err := batch.WriteSync(); err != nil {
		return fmt.Errorf("replace proposals for %s: %w", ref, err)
	}
	return nil
}

//---------------------------- BOOKMARKS AND NAMES ---------------------------

// MarketBookmark is a market the user saved for quick access.
type MarketBookmark struct {
	Market  types.OutPoint      `json:"market"`
	SavedAt types.UnixTimestamp `json:"saved_at"`
}

// SaveMarketBookmark bookmarks a market. Saving an already-saved market
// refreshes its timestamp.
func (s *Store) SaveMarketBookmark(ref types.OutPoint, savedAt types.UnixTimestamp) error {
	bz, err := json.Marshal(savedAt)
	if err != nil {
		return fmt.Errorf("encode bookmark %s: %w", ref, err)
	}
	if err := s.db.SetSync(savedMarketKey(ref), bz); err != nil {
		return fmt.Errorf("write bookmark %s: %w", ref, err)
	}
	return nil
}

// DeleteMarketBookmark removes a bookmark. Unknown bookmarks are a no-op.
func (s *Store) DeleteMarketBookmark(ref types.OutPoint) error {
	if err := s.db.DeleteSync(savedMarketKey(ref)); err != nil {
		return fmt.Errorf("delete bookmark %s: %w", ref, err)
	}
	return nil
}

// MarketBookmarks returns every saved market.
func (s *Store) MarketBookmarks() ([]MarketBookmark, error) {
	start, end := prefixRange(prefixSavedMarket)
	iter, err := s.db.Iterator(start, end)
	if err != nil {
		return nil, fmt.Errorf("iterate bookmarks: %w", err)
	}
	defer iter.Close()

	var bookmarks []MarketBookmark
	for ; iter.Valid(); iter.Next() {
		ref, err := decodeSavedMarketKey(iter.Key())
		if err != nil {
			return nil, err
		}
		var savedAt types.UnixTimestamp
		if err := json.Unmarshal(iter.Value(), &savedAt); err != nil {
			return nil, fmt.Errorf("corrupt bookmark %s: %w", ref, err)
		}
		bookmarks = append(bookmarks, MarketBookmark{Market: ref, SavedAt: savedAt})
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("iterate bookmarks: %w", err)
	}
	return bookmarks, nil
}

// SetPayoutControlName stores a local alias for an attestation identity
// (x-only hex).
func (s *Store) SetPayoutControlName(control, name string) error {
	bz, err := json.Marshal(name)
	if err != nil {
		return fmt.Errorf("encode name for %s: %w", control, err)
	}
	if err := s.db.SetSync(payoutControlNameKey(control), bz); err != nil {
		return fmt.Errorf("write name for %s: %w", control, err)
	}
	return nil
}

// DeletePayoutControlName removes an alias. Unknown aliases are a no-op.
func (s *Store) DeletePayoutControlName(control string) error {
	if err := s.db.DeleteSync(payoutControlNameKey(control)); err != nil {
		return fmt.Errorf("delete name for %s: %w", control, err)
	}
	return nil
}

// PayoutControlNames returns every stored alias keyed by identity.
func (s *Store) PayoutControlNames() (map[string]string, error) {
	start, end := prefixRange(prefixPayoutControlName)
	iter, err := s.db.Iterator(start, end)
	if err != nil {
		return nil, fmt.Errorf("iterate payout control names: %w", err)
	}
	defer iter.Close()

	names := make(map[string]string)
	for ; iter.Valid(); iter.Next() {
		control, err := decodePayoutControlNameKey(iter.Key())
		if err != nil {
			return nil, err
		}
		var name string
		if err := json.Unmarshal(iter.Value(), &name); err != nil {
			return nil, fmt.Errorf("corrupt name for %s: %w", control, err)
		}
		names[control] = name
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("iterate payout control names: %w", err)
	}
	return names, nil
}

//------------------------- PAYOUT CONTROL MARKETS ---------------------------

// PayoutControlMarket is one market created under this client's payout
// control.
type PayoutControlMarket struct {
	Created types.UnixTimestamp `json:"created"`
	Market  types.OutPoint      `json:"market"`
}

// AddPayoutControlMarket indexes a market controlled by this client's
// payout control under its creation time.
func (s *Store) AddPayoutControlMarket(created types.UnixTimestamp, ref types.OutPoint) error {
	if err := s.db.SetSync(payoutControlMarketKey(created, ref), indexValue); err != nil {
		return fmt.Errorf("write payout control market %s: %w", ref, err)
	}
	return nil
}

// NewestPayoutControlMarketTime returns the creation time of the newest
// indexed market, or 0 when none are cached. It is the low-water mark for
// incremental refreshes.
func (s *Store) NewestPayoutControlMarketTime() (types.UnixTimestamp, error) {
	start, end := prefixRange(prefixPayoutControlMarket)
	iter, err := s.db.ReverseIterator(start, end)
	if err != nil {
		return 0, fmt.Errorf("iterate payout control markets: %w", err)
	}
	defer iter.Close()

	if iter.Valid() {
		created, _, err := decodePayoutControlMarketKey(iter.Key())
		if err != nil {
			return 0, err
		}
		return created, nil
	}
	if err := iter.Error(); err != nil {
		return 0, fmt.Errorf("iterate payout control markets: %w", err)
	}
	return 0, nil
}

// PayoutControlMarkets returns indexed markets created at or after since,
// newest first.
func (s *Store) PayoutControlMarkets(since types.UnixTimestamp) ([]PayoutControlMarket, error) {
	start, end := prefixRange(prefixPayoutControlMarket)
	iter, err := s.db.ReverseIterator(start, end)
	if err != nil {
		return nil, fmt.Errorf("iterate payout control markets: %w", err)
	}
	defer iter.Close()

	var markets []PayoutControlMarket
	for ; iter.Valid(); iter.Next() {
		created, ref, err := decodePayoutControlMarketKey(iter.Key())
		if err != nil {
			return nil, err
		}
		if created < since {
			break
		}
		markets = append(markets, PayoutControlMarket{Created: created, Market: ref})
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("iterate payout control markets: %w", err)
	}
	return markets, nil
}

//---------------------------------- KEY ENCODING ----------------------------

// key prefixes, unique across the whole database
const (
	prefixOrderSlot            = int64(0)
	prefixOrderByMarket        = int64(1)
	prefixNonZeroOrderByMarket = int64(2)
	prefixOrderNeedsUpdate     = int64(3)
	prefixMarket               = int64(4)
	prefixPayoutProposal       = int64(5)
	prefixSavedMarket          = int64(6)
	prefixPayoutControlName    = int64(7)
	prefixPayoutControlMarket  = int64(8)
)

func orderSlotKey(id types.OrderID) []byte {
	key, err := orderedcode.Append(nil, prefixOrderSlot, uint64(id))
	if err != nil {
		panic(err)
	}
	return key
}

func decodeOrderSlotKey(key []byte) (types.OrderID, error) {
	var prefix int64
	var id uint64
	remaining, err := orderedcode.Parse(string(key), &prefix, &id)
	if err != nil {
		return 0, fmt.Errorf("decode order slot key: %w", err)
	}
	if len(remaining) != 0 {
		return 0, fmt.Errorf("decode order slot key: unexpected remainder %q", remaining)
	}
	if prefix != prefixOrderSlot {
		return 0, fmt.Errorf("decode order slot key: unexpected prefix %v", prefix)
	}
	return types.OrderID(id), nil
}

func orderIndexKey(prefix int64, market types.OutPoint, outcome types.Outcome, id types.OrderID) []byte {
	key, err := orderedcode.Append(nil, prefix, string(market.TxID[:]), int64(market.Index), int64(outcome), uint64(id))
	if err != nil {
		panic(err)
	}
	return key
}

func decodeOrderIndexKey(wantPrefix int64, key []byte) (types.OrderID, error) {
	var prefix, index, outcome int64
	var txID string
	var id uint64
	remaining, err := orderedcode.Parse(string(key), &prefix, &txID, &index, &outcome, &id)
	if err != nil {
		return 0, fmt.Errorf("decode order index key: %w", err)
	}
	if len(remaining) != 0 {
		return 0, fmt.Errorf("decode order index key: unexpected remainder %q", remaining)
	}
	if prefix != wantPrefix {
		return 0, fmt.Errorf("decode order index key: unexpected prefix %v", prefix)
	}
	return types.OrderID(id), nil
}

func orderNeedsUpdateKey(id types.OrderID) []byte {
	key, err := orderedcode.Append(nil, prefixOrderNeedsUpdate, uint64(id))
	if err != nil {
		panic(err)
	}
	return key
}

func decodeOrderNeedsUpdateKey(key []byte) (types.OrderID, error) {
	var prefix int64
	var id uint64
	remaining, err := orderedcode.Parse(string(key), &prefix, &id)
	if err != nil {
		return 0, fmt.Errorf("decode needs-update key: %w", err)
	}
	if len(remaining) != 0 {
		return 0, fmt.Errorf("decode needs-update key: unexpected remainder %q", remaining)
	}
	if prefix != prefixOrderNeedsUpdate {
		return 0, fmt.Errorf("decode needs-update key: unexpected prefix %v", prefix)
	}
	return types.OrderID(id), nil
}

func marketKey(ref types.OutPoint) []byte {
	key, err := orderedcode.Append(nil, prefixMarket, string(ref.TxID[:]), int64(ref.Index))
	if err != nil {
		panic(err)
	}
	return key
}

func payoutProposalKey(ref types.OutPoint, control string) []byte {
	key, err := orderedcode.Append(nil, prefixPayoutProposal, string(ref.TxID[:]), int64(ref.Index), control)
	if err != nil {
		panic(err)
	}
	return key
}

func decodePayoutProposalKey(key []byte) (string, error) {
	var prefix, index int64
	var txID, control string
	remaining, err := orderedcode.Parse(string(key), &prefix, &txID, &index, &control)
	if err != nil {
		return "", fmt.Errorf("decode proposal key: %w", err)
	}
	if len(remaining) != 0 {
		return "", fmt.Errorf("decode proposal key: unexpected remainder %q", remaining)
	}
	if prefix != prefixPayoutProposal {
		return "", fmt.Errorf("decode proposal key: unexpected prefix %v", prefix)
	}
	return control, nil
}

func savedMarketKey(ref types.OutPoint) []byte {
	key, err := orderedcode.Append(nil, prefixSavedMarket, string(ref.TxID[:]), int64(ref.Index))
	if err != nil {
		panic(err)
	}
	return key
}

func decodeSavedMarketKey(key []byte) (types.OutPoint, error) {
	var prefix, index int64
	var txID string
	remaining, err := orderedcode.Parse(string(key), &prefix, &txID, &index)
	if err != nil {
		return types.OutPoint{}, fmt.Errorf("decode bookmark key: %w", err)
	}
	if len(remaining) != 0 {
		return types.OutPoint{}, fmt.Errorf("decode bookmark key: unexpected remainder %q", remaining)
	}
	if prefix != prefixSavedMarket {
		return types.OutPoint{}, fmt.Errorf("decode bookmark key: unexpected prefix %v", prefix)
	}
	return outPointFromComponents(txID, index)
}

func payoutControlNameKey(control string) []byte {
	key, err := orderedcode.Append(nil, prefixPayoutControlName, control)
	if err != nil {
		panic(err)
	}
	return key
}

func decodePayoutControlNameKey(key []byte) (string, error) {
	var prefix int64
	var control string
	remaining, err := orderedcode.Parse(string(key), &prefix, &control)
	if err != nil {
		return "", fmt.Errorf("decode name key: %w", err)
	}
	if len(remaining) != 0 {
		return "", fmt.Errorf("decode name key: unexpected remainder %q", remaining)
	}
	if prefix != prefixPayoutControlName {
		return "", fmt.Errorf("decode name key: unexpected prefix %v", prefix)
	}
	return control, nil
}

func payoutControlMarketKey(created types.UnixTimestamp, ref types.OutPoint) []byte {
	key, err := orderedcode.Append(nil, prefixPayoutControlMarket, int64(created), string(ref.TxID[:]), int64(ref.Index))
	if err != nil {
		panic(err)
	}
	return key
}

func decodePayoutControlMarketKey(key []byte) (types.UnixTimestamp, types.OutPoint, error) {
	var prefix, created, index int64
	var txID string
	remaining, err := orderedcode.Parse(string(key), &prefix, &created, &txID, &index)
	if err != nil {
		return 0, types.OutPoint{}, fmt.Errorf("decode payout control market key: %w", err)
	}
	if len(remaining) != 0 {
		return 0, types.OutPoint{}, fmt.Errorf("decode payout control market key: unexpected remainder %q", remaining)
	}
	if prefix != prefixPayoutControlMarket {
		return 0, types.OutPoint{}, fmt.Errorf("decode payout control market key: unexpected prefix %v", prefix)
	}
	ref, err := outPointFromComponents(txID, index)
	if err != nil {
		return 0, types.OutPoint{}, err
	}
	return types.UnixTimestamp(created), ref, nil
}

func outPointFromComponents(txID string, index int64) (types.OutPoint, error) {
	if len(txID) != types.TxIDSize {
		return types.OutPoint{}, fmt.Errorf("decode outpoint: %d-byte transaction id", len(txID))
	}
	var ref types.OutPoint
	copy(ref.TxID[:], txID)
	ref.Index = uint32(index)
	return ref, nil
}

// prefixRange returns the start and end keys covering every key that begins
// with the given components.
func prefixRange(items ...interface{}) (start, end []byte) {
	var err error
	start, err = orderedcode.Append(nil, items...)
	if err != nil {
		panic(err)
	}
	end, err = orderedcode.Append(nil, append(items[:len(items):len(items)], orderedcode.Infinity)...)
	if err != nil {
		panic(err)
	}
	return start, end
}
