// Converts between API and storage representations.

package handlers

import (
	"github.com/inventorysystem/inventory/internal/jsonldb"
	"github.com/inventorysystem/inventory/internal/server/dto"
	"github.com/inventorysystem/inventory/internal/storage/entity"
	"github.com/shopspring/decimal"
)

func keyOf(ref *dto.Ref) jsonldb.Key {
	if ref.ID > 0 {
		return jsonldb.ByID(ref.ID)
	}
	return jsonldb.ByCode(ref.Code)
}

func roomToDTO(r *entity.Room) *dto.Room {
	return &dto.Room{ID: r.ID, Code: r.Code, Items: itemsToDTO(r.Items)}
}

func itemsToDTO(items []entity.Item) []dto.Item {
	out := make([]dto.Item, len(items))
	for i := range items {
		out[i] = *itemToDTO(&items[i])
	}
	return out
}

func itemToDTO(it *entity.Item) *dto.Item {
	out := &dto.Item{
		ID:             it.ID,
		Code:           it.Code,
		Description:    it.Description,
		Quantity:       it.Quantity,
		Price:          it.Price.String(),
		DocumentNumber: it.DocumentNumber,
	}
	if !it.IncomingDate.IsZero() {
		out.IncomingDate = it.IncomingDate.String()
	}
	if !it.OutgoingDate.IsZero() {
		out.OutgoingDate = it.OutgoingDate.String()
	}
	if !it.ModificationDate.IsZero() {
		out.ModificationDate = it.ModificationDate.String()
	}
	if it.User != nil {
		out.User = &dto.User{
			ID:           it.User.ID,
			Name:         it.User.Name,
			Surname:      it.User.Surname,
			IsAuthorized: it.User.IsAuthorized,
		}
	}
	return out
}

// itemFromDTO converts an API item. The id is left to the store.
func itemFromDTO(in *dto.Item) (*entity.Item, error) {
	out := &entity.Item{
		Code:           in.Code,
		Description:    in.Description,
		Quantity:       in.Quantity,
		DocumentNumber: in.DocumentNumber,
	}
	if in.Price != "" {
		p, err := decimal.NewFromString(in.Price)
		if err != nil {
			return nil, dto.InvalidField("price", "want a decimal number").Wrap(err)
		}
		out.Price = p
	}
	for _, d := range []struct {
		name string
		src  string
		dst  *entity.Date
	}{
		{"incomingDate", in.IncomingDate, &out.IncomingDate},
		{"outgoingDate", in.OutgoingDate, &out.OutgoingDate},
		{"modificationDate", in.ModificationDate, &out.ModificationDate},
	} {
		if d.src == "" {
			continue
		}
		v, err := entity.ParseDate(d.src)
		if err != nil {
			return nil, dto.InvalidField(d.name, "want YYYY-MM-DD").Wrap(err)
		}
		*d.dst = v
	}
	if in.User != nil {
		out.User = &entity.User{
			ID:           in.User.ID,
			Name:         in.User.Name,
			Surname:      in.User.Surname,
			IsAuthorized: in.User.IsAuthorized,
		}
	}
	return out, nil
}

func itemsFromDTO(in []dto.Item) ([]entity.Item, error) {
	out := make([]entity.Item, len(in))
	for i := range in {
		it, err := itemFromDTO(&in[i])
		if err != nil {
			return nil, err
		}
		out[i] = *it
	}
	return out, nil
}
