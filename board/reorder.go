package board

import "slices"

// PrioTopInCategory moves the entity immediately before every other member
// of its category and returns its new index.
func (b *Board[T]) PrioTopInCategory(id ID) (int, error) {
	from, category, err := b.locate(id)
	if err != nil {
		return 0, err
	}

	to := from
	for i := 0; i < from; i++ {
		if b.Entities[i].Content.Category() == category {
			to = i
			break
		}
	}
	b.move(from, to)
	return to, nil
}

// PrioBottomInCategory moves the entity after every other member of its
// category and returns its new index.
func (b *Board[T]) PrioBottomInCategory(id ID) (int, error) {
	from, category, err := b.locate(id)
	if err != nil {
		return 0, err
	}

	to := from
	for i := len(b.Entities) - 1; i > from; i-- {
		if b.Entities[i].Content.Category() == category {
			to = i
			break
		}
	}
	b.move(from, to)
	return to, nil
}

// PrioUpInCategory moves the entity ahead of the previous member of its
// category. It does nothing if the entity already comes first.
func (b *Board[T]) PrioUpInCategory(id ID) (int, error) {
	from, category, err := b.locate(id)
	if err != nil {
		return 0, err
	}

	to := from
	for i := from - 1; i >= 0; i-- {
		if b.Entities[i].Content.Category() == category {
			to = i
			break
		}
	}
	b.move(from, to)
	return to, nil
}

// PrioDownInCategory moves the entity behind the next member of its
// category. It does nothing if the entity already comes last.
func (b *Board[T]) PrioDownInCategory(id ID) (int, error) {
	from, category, err := b.locate(id)
	if err != nil {
		return 0, err
	}

	to := from
	for i := from + 1; i < len(b.Entities); i++ {
		if b.Entities[i].Content.Category() == category {
			to = i
			break
		}
	}
	b.move(from, to)
	return to, nil
}

// MoveTo relocates the entity so that it ends up at index, shifting the
// entities in between. Unlike the category operations it ignores categories.
func (b *Board[T]) MoveTo(id ID, index int) error {
	from, err := b.Position(id)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(b.Entities) {
		return &IndexOutOfRangeError{Index: index}
	}
	b.move(from, index)
	return nil
}

func (b *Board[T]) locate(id ID) (int, string, error) {
	position, err := b.Position(id)
	if err != nil {
		return 0, "", err
	}
	return position, b.Entities[position].Content.Category(), nil
}

// move removes the entity at from and reinserts it so it lands at to.
func (b *Board[T]) move(from, to int) {
	if from == to {
		return
	}
	entity := b.Entities[from]
	b.Entities = slices.Delete(b.Entities, from, from+1)
	b.Entities = slices.Insert(b.Entities, to, entity)
}
