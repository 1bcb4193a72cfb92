package domain

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("already exists")
)

// Limit is the size of a single page. Positive values are page sizes, Unlimited
// disables pagination. Zero is never a valid Limit.
type Limit int

const Unlimited Limit = -1

func (l Limit) IsUnlimited() bool {
	return l == Unlimited
}

func (l Limit) Valid() bool {
	return l > 0 || l == Unlimited
}

func (l Limit) String() string {
	if l.IsUnlimited() {
		return "unlimited"
	}
	return strconv.Itoa(int(l))
}

func (l Limit) MarshalJSON() ([]byte, error) {
	if l.IsUnlimited() {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(int(l))), nil
}

// Offset of the first item on the given (1-based) page.
func (l Limit) Offset(page int) int {
	if l.IsUnlimited() || page < 1 {
		return 0
	}
	return (page - 1) * int(l)
}

// PageNumber is the (1-based) page starting at offset.
func (l Limit) PageNumber(offset int) int {
	if l.IsUnlimited() || l <= 0 || offset < 0 {
		return 1
	}
	return offset/int(l) + 1
}

type Page[T any] struct {
	Items  []T
	Number int
	Size   Limit
	Total  int64
}

func ValidatePage(number int, size Limit, total int64) error {
	if number < 1 {
		return fmt.Errorf("%w: page number must be at least 1, got %d", ErrInvalidArgument, number)
	}
	if total < 0 {
		return fmt.Errorf("%w: total must be non-negative, got %d", ErrInvalidArgument, total)
	}
	if !size.Valid() {
		return fmt.Errorf("%w: limit must be positive or unlimited, got %d", ErrInvalidArgument, int(size))
	}
	return nil
}

// TotalPages returns the number of pages needed to hold total items. An empty
// result has zero pages, an unlimited one always has exactly one.
func TotalPages(total int64, limit Limit) int {
	if limit.IsUnlimited() {
		return 1
	}
	if total <= 0 || limit <= 0 {
		return 0
	}
	size := int64(limit)
	return int((total + size - 1) / size)
}
