package storage

type IterItem struct {
	N     int64
	Key   []byte
	Value []byte
}

// Clone copies the item out of the iterator buffers; the iterator
// reuses them between steps.
func (i IterItem) Clone() IterItem {
	item := IterItem{N: i.N}
	item.Key = make([]byte, len(i.Key))
	copy(item.Key, i.Key)
	item.Value = make([]byte, len(i.Value))
	copy(item.Value, i.Value)

	return item
}

type Item struct {
	Key   string
	Value interface{}
}
