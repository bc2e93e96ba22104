package main

import (
	"errors"
	"path"
	"sort"

	"skabillium/lists/deque"
)

var ErrNoSuchKey = errors.New("ERR no such key")
var ErrOutOfRange = errors.New("ERR index out of range")

// Database maps keys to lists. It is not safe for concurrent use, the server
// serializes access to it.
type Database struct {
	lists map[string]*deque.List[string]
}

func NewDatabase() *Database {
	return &Database{lists: make(map[string]*deque.List[string])}
}

func (d *Database) Size() int {
	return len(d.lists)
}

func (d *Database) Keys(pattern string) ([]string, error) {
	keys := make([]string, 0, len(d.lists))
	for k := range d.lists {
		matched, err := path.Match(pattern, k)
		if err != nil {
			return nil, err
		}
		if matched {
			keys = append(keys, k)
		}
	}

	sort.Strings(keys)
	return keys, nil
}

func (d *Database) Del(keys ...string) int {
	deleted := 0
	for _, key := range keys {
		list, found := d.lists[key]
		if !found {
			continue
		}

		list.Clear()
		delete(d.lists, key)
		deleted++
	}

	return deleted
}

func (d *Database) FlushAll() {
	for _, list := range d.lists {
		list.Clear()
	}
	d.lists = make(map[string]*deque.List[string])
}

func (d *Database) LPush(key string, values ...string) int {
	list := d.getOrCreate(key)
	for _, v := range values {
		list.PushFront(v)
	}

	return list.Len()
}

func (d *Database) RPush(key string, values ...string) int {
	list := d.getOrCreate(key)
	for _, v := range values {
		list.PushBack(v)
	}

	return list.Len()
}

func (d *Database) LPop(key string) (string, bool) {
	list, found := d.lists[key]
	if !found {
		return "", false
	}

	value, ok := list.PopFront()
	d.dropIfEmpty(key, list)
	return value, ok
}

func (d *Database) RPop(key string) (string, bool) {
	list, found := d.lists[key]
	if !found {
		return "", false
	}

	value, ok := list.PopBack()
	d.dropIfEmpty(key, list)
	return value, ok
}

func (d *Database) LLen(key string) int {
	list, found := d.lists[key]
	if !found {
		return 0
	}

	return list.Len()
}

// LRange returns the elements between start and stop inclusive. Negative
// indexes count from the back, -1 being the last element.
func (d *Database) LRange(key string, start int, stop int) []string {
	list, found := d.lists[key]
	if !found {
		return []string{}
	}

	start, stop, ok := clampRange(start, stop, list.Len())
	if !ok {
		return []string{}
	}

	it := list.Iter()
	defer it.Close()

	out := make([]string, 0, stop-start+1)
	for i := 0; i <= stop; i++ {
		v, _ := it.Next()
		if i >= start {
			out = append(out, v)
		}
	}

	return out
}

// LRevRange is LRange with indexes counted from the back of the list.
func (d *Database) LRevRange(key string, start int, stop int) []string {
	list, found := d.lists[key]
	if !found {
		return []string{}
	}

	start, stop, ok := clampRange(start, stop, list.Len())
	if !ok {
		return []string{}
	}

	it := list.Iter()
	defer it.Close()

	out := make([]string, 0, stop-start+1)
	for i := 0; i <= stop; i++ {
		v, _ := it.NextBack()
		if i >= start {
			out = append(out, v)
		}
	}

	return out
}

func (d *Database) LIndex(key string, index int) (string, bool) {
	list, found := d.lists[key]
	if !found {
		return "", false
	}

	index, ok := normalizeIndex(index, list.Len())
	if !ok {
		return "", false
	}

	it := list.Iter()
	defer it.Close()

	// Walk from whichever end is closer.
	var v string
	if index < list.Len()/2 {
		for i := 0; i <= index; i++ {
			v, _ = it.Next()
		}
	} else {
		for i := list.Len() - 1; i >= index; i-- {
			v, _ = it.NextBack()
		}
	}

	return v, true
}

func (d *Database) LSet(key string, index int, value string) error {
	list, found := d.lists[key]
	if !found {
		return ErrNoSuchKey
	}

	index, ok := normalizeIndex(index, list.Len())
	if !ok {
		return ErrOutOfRange
	}

	it := list.IterMut()
	defer it.Close()

	var p *string
	if index < list.Len()/2 {
		for i := 0; i <= index; i++ {
			p, _ = it.Next()
		}
	} else {
		for i := list.Len() - 1; i >= index; i-- {
			p, _ = it.NextBack()
		}
	}

	*p = value
	return nil
}

func (d *Database) getOrCreate(key string) *deque.List[string] {
	list, found := d.lists[key]
	if !found {
		list = deque.New[string]()
		d.lists[key] = list
	}

	return list
}

func (d *Database) dropIfEmpty(key string, list *deque.List[string]) {
	if list.Len() == 0 {
		delete(d.lists, key)
	}
}

func normalizeIndex(index int, length int) (int, bool) {
	if index < 0 {
		index += length
	}
	return index, index >= 0 && index < length
}

func clampRange(start int, stop int, length int) (int, int, bool) {
	if start < 0 {
		start += length
	}
	if stop < 0 {
		stop += length
	}
	if start < 0 {
		start = 0
	}
	if stop >= length {
		stop = length - 1
	}

	return start, stop, start <= stop && start < length
}
