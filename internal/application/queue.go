package application

import (
	"container/heap"
	"time"
)

type thresholdItem struct {
	eventID uint
	at      time.Time
	index   int
}

// thresholdQueue is a min-heap of events keyed by their next threshold.
type thresholdQueue []*thresholdItem

func (q thresholdQueue) Len() int { return len(q) }

func (q thresholdQueue) Less(i, j int) bool {
	if q[i].at.Equal(q[j].at) {
		return q[i].eventID < q[j].eventID
	}
	return q[i].at.Before(q[j].at)
}

func (q thresholdQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *thresholdQueue) Push(x any) {
	item := x.(*thresholdItem)
	item.index = len(*q)
	*q = append(*q, item)
}

func (q *thresholdQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*q = old[:n-1]
	return item
}

func (q thresholdQueue) peek() *thresholdItem {
	if len(q) == 0 {
		return nil
	}
	return q[0]
}

var _ heap.Interface = (*thresholdQueue)(nil)
