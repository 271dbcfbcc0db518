package documents

import "github.com/meridian-crm/meridian-crm/internal/masterdata/items"

// SnapshotLine copies a catalog item into a fresh document line. Quantity
// starts at 1 and discount at 0; later catalog edits never reach the copy.
func SnapshotLine(item items.Item) DocumentLine {
	itemID := item.ID
	return DocumentLine{
		ItemID:      &itemID,
		ItemCode:    item.Code,
		ItemName:    item.Name,
		Description: item.Description,
		HSN:         item.HSN,
		UOM:         item.UOM,
		Rate:        item.Rate,
		Quantity:    1,
		GSTPercent:  item.GSTPercent,
	}
}
