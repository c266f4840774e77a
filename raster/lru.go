package raster

import "github.com/gogpu/textlayout"

// lruNode is a node in a doubly-linked LRU list.
// The node stores its key for O(1) deletion from the shard map.
type lruNode struct {
	key  textlayout.CacheKey
	prev *lruNode
	next *lruNode
}

// lruList is a doubly-linked list for LRU eviction; head is the most
// recently used entry. The list is not thread-safe.
type lruList struct {
	head *lruNode
	tail *lruNode
	len  int
}

func (l *lruList) Len() int {
	return l.len
}

// PushFront adds a key as the most recently used entry.
func (l *lruList) PushFront(key textlayout.CacheKey) *lruNode {
	node := &lruNode{key: key}
	l.pushNode(node)
	return node
}

// MoveToFront marks an existing node as most recently used.
func (l *lruList) MoveToFront(node *lruNode) {
	if node == nil || node == l.head {
		return
	}
	l.unlink(node)
	l.pushNode(node)
}

// Remove removes a node from the list.
func (l *lruList) Remove(node *lruNode) {
	if node == nil {
		return
	}
	l.unlink(node)
}

// RemoveOldest removes and returns the least recently used key.
func (l *lruList) RemoveOldest() (textlayout.CacheKey, bool) {
	if l.tail == nil {
		return textlayout.CacheKey{}, false
	}
	node := l.tail
	l.unlink(node)
	return node.key, true
}

func (l *lruList) Clear() {
	l.head = nil
	l.tail = nil
	l.len = 0
}

func (l *lruList) pushNode(node *lruNode) {
	node.prev = nil
	node.next = l.head
	if l.head != nil {
		l.head.prev = node
	}
	l.head = node
	if l.tail == nil {
		l.tail = node
	}
	l.len++
}

func (l *lruList) unlink(node *lruNode) {
	if node.prev != nil {
		node.prev.next = node.next
	} else {
		l.head = node.next
	}
	if node.next != nil {
		node.next.prev = node.prev
	} else {
		l.tail = node.prev
	}
	node.prev = nil
	node.next = nil
	l.len--
}
