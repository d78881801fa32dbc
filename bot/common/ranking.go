package common

import (
	"sort"
	"strconv"
)

// RankKey holds the values a standings table is ordered by
type RankKey struct {
	Points int
	Wins   int
	Losses int
}

// Less orders by points desc, then wins desc, then losses asc
func (k RankKey) Less(other RankKey) bool {
	if k.Points != other.Points {
		return k.Points > other.Points
	}
	if k.Wins != other.Wins {
		return k.Wins > other.Wins
	}
	return k.Losses < other.Losses
}

// SortRanking sorts items in place by their rank key. Items equal on every
// key keep their original relative order.
func SortRanking[T any](items []T, key func(T) RankKey) {
	sort.SliceStable(items, func(i, j int) bool {
		return key(items[i]).Less(key(items[j]))
	})
}

// RankLabel returns a medal for the podium and "N." for everyone else
func RankLabel(index int) string {
	switch index {
	case 0:
		return "🥇"
	case 1:
		return "🥈"
	case 2:
		return "🥉"
	default:
		return strconv.Itoa(index+1) + "."
	}
}
