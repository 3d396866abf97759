package ui

import (
	"StreamBot/bot/chat"
	"fmt"
	"strconv"
)

const (
	DefaultItemsPerPage = 8
	gridColumns         = 2
)

// PaginatedGrid lays items out in two columns with a navigation row below.
//
//	[Item 1] [Item 2]
//	[Item 3] [Item 4]
//	[◀️] [1/3] [▶️]
func PaginatedGrid(namespace, pageNamespace string, items []SelectableItem, currentPage, totalPages int) [][]chat.InlineButton {
	rows := make([][]chat.InlineButton, 0, len(items)/gridColumns+2)

	var row []chat.InlineButton
	for _, item := range items {
		row = append(row, chat.InlineButton{Text: item.Text, Data: chat.CallbackData(namespace, item.ID)})
		if len(row) == gridColumns {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	if nav := buildNavRow(pageNamespace, currentPage, totalPages); len(nav) > 0 {
		rows = append(rows, nav)
	}
	return rows
}

func buildNavRow(namespace string, currentPage, totalPages int) []chat.InlineButton {
	if totalPages <= 1 {
		return nil
	}

	noop := chat.CallbackData(namespace, chat.ActionNoop)
	navRow := make([]chat.InlineButton, 0, 3)

	if currentPage > 1 {
		navRow = append(navRow, chat.InlineButton{
			Text: "◀️ Anterior",
			Data: chat.CallbackData(namespace, chat.ActionPage, strconv.Itoa(currentPage-1)),
		})
	} else {
		navRow = append(navRow, chat.InlineButton{Text: " ", Data: noop})
	}

	navRow = append(navRow, chat.InlineButton{
		Text: fmt.Sprintf("%d/%d", currentPage, totalPages),
		Data: noop,
	})

	if currentPage < totalPages {
		navRow = append(navRow, chat.InlineButton{
			Text: "Próxima ▶️",
			Data: chat.CallbackData(namespace, chat.ActionPage, strconv.Itoa(currentPage+1)),
		})
	} else {
		navRow = append(navRow, chat.InlineButton{Text: " ", Data: noop})
	}

	return navRow
}

// GetPageSlice returns a slice of items for the given page.
func GetPageSlice[T any](items []T, page, itemsPerPage int) []T {
	if page < 1 {
		page = 1
	}

	start := (page - 1) * itemsPerPage
	if start >= len(items) {
		return nil
	}

	end := start + itemsPerPage
	if end > len(items) {
		end = len(items)
	}

	return items[start:end]
}

// CalculateTotalPages calculates the total number of pages.
func CalculateTotalPages(totalItems, itemsPerPage int) int {
	if itemsPerPage <= 0 {
		return 1
	}
	pages := totalItems / itemsPerPage
	if totalItems%itemsPerPage > 0 {
		pages++
	}
	if pages == 0 {
		pages = 1
	}
	return pages
}

// ClampPage keeps page within [1, totalPages].
func ClampPage(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}
