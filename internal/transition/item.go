package transition

// Item is one member of the host's keyed collection.
//
// Keys must be unique within a single observed collection. This is a caller
// contract: the engine does not detect duplicates, and behavior with
// duplicate keys is unspecified.
type Item struct {
	Key     string
	Payload any
}

// PositionedItem pairs an item with an index. The meaning of the index
// depends on context: for currently present items it is the index in the
// live collection; for leaving items it is the index in the merged output
// ordering.
type PositionedItem struct {
	Item  Item
	Index int
}

// RenderedItem is one slot of the merged output sequence. Phase is the
// presentation tag for this reconciliation pass; it is empty for settled
// items.
type RenderedItem struct {
	Key     string
	Payload any
	Phase   string
}
