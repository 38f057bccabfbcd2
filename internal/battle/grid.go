package battle

import "math/rand"

// GridField owns the 2-row enemy grid and the column-aligned gate array. All
// spatial queries and occupancy mutations go through it; nothing else writes
// cell state.
type GridField struct {
	columns int
	cells   map[GridPosition]*EnemyInstance
	gates   []*Gate
	rng     *rand.Rand
}

// NewGridField builds an empty field with gates laid out per the fixed design
// table for the column count.
func NewGridField(columns int, catalog *Catalog, rng *rand.Rand) *GridField {
	if columns < 1 {
		columns = 1
	}
	field := &GridField{
		columns: columns,
		cells:   make(map[GridPosition]*EnemyInstance),
		gates:   make([]*Gate, 0, columns),
	}
	field.rng = rng
	for column, gateType := range GateLayout(columns) {
		field.gates = append(field.gates, NewGate(column, catalog.GateConfigFor(gateType)))
	}
	return field
}

// Columns returns the grid width.
func (f *GridField) Columns() int {
	if f == nil {
		return 0
	}
	return f.columns
}

// Gates returns the gate array in column order. Callers must not reorder it.
func (f *GridField) Gates() []*Gate {
	if f == nil {
		return nil
	}
	return f.gates
}

// GateInColumn returns the gate for a column, or nil when out of range.
func (f *GridField) GateInColumn(column int) *Gate {
	if f == nil || column < 0 || column >= len(f.gates) {
		return nil
	}
	return f.gates[column]
}

// EnemyAt returns the occupant of a cell, nil when empty or out of bounds.
func (f *GridField) EnemyAt(position GridPosition) *EnemyInstance {
	if f == nil || !position.Valid(f.columns) {
		return nil
	}
	return f.cells[position]
}

// PlaceEnemy binds an enemy to a cell. It fails without mutation when the
// position is out of bounds or already occupied.
func (f *GridField) PlaceEnemy(enemy *EnemyInstance, position GridPosition) bool {
	if f == nil || enemy == nil || !position.Valid(f.columns) {
		return false
	}
	if _, occupied := f.cells[position]; occupied {
		return false
	}
	f.cells[position] = enemy
	enemy.Position = position
	return true
}

// RemoveEnemy clears a cell. It fails when the cell is unoccupied or out of
// bounds.
func (f *GridField) RemoveEnemy(position GridPosition) bool {
	if f == nil || !position.Valid(f.columns) {
		return false
	}
	enemy, occupied := f.cells[position]
	if !occupied {
		return false
	}
	delete(f.cells, position)
	if enemy != nil {
		enemy.Position = NoPosition
	}
	return true
}

// FrontEnemyInColumn returns the living occupant closest to the player in a
// column: row 0 first, then row 1, else nil.
func (f *GridField) FrontEnemyInColumn(column int) *EnemyInstance {
	for row := 0; row < GridRows; row++ {
		if enemy := f.EnemyAt(GridPosition{Column: column, Row: row}); enemy.Alive() {
			return enemy
		}
	}
	return nil
}

// EnemiesInColumn returns the living enemies in a column, front first.
func (f *GridField) EnemiesInColumn(column int) []*EnemyInstance {
	var enemies []*EnemyInstance
	for row := 0; row < GridRows; row++ {
		if enemy := f.EnemyAt(GridPosition{Column: column, Row: row}); enemy.Alive() {
			enemies = append(enemies, enemy)
		}
	}
	return enemies
}

// EnemiesInRow returns the living enemies across a row, left to right.
func (f *GridField) EnemiesInRow(row int) []*EnemyInstance {
	if f == nil || row < 0 || row >= GridRows {
		return nil
	}
	var enemies []*EnemyInstance
	for column := 0; column < f.columns; column++ {
		if enemy := f.EnemyAt(GridPosition{Column: column, Row: row}); enemy.Alive() {
			enemies = append(enemies, enemy)
		}
	}
	return enemies
}

// LivingEnemies returns every living enemy on the field in column-major
// order. The stable order keeps damage application deterministic.
func (f *GridField) LivingEnemies() []*EnemyInstance {
	if f == nil {
		return nil
	}
	var enemies []*EnemyInstance
	for column := 0; column < f.columns; column++ {
		for row := 0; row < GridRows; row++ {
			if enemy := f.EnemyAt(GridPosition{Column: column, Row: row}); enemy.Alive() {
				enemies = append(enemies, enemy)
			}
		}
	}
	return enemies
}

// CanAttackGate reports whether the gate in a column is a legal target: it
// must exist, be standing, and no living enemy may occupy either row of the
// column. Enemies screen their gate.
func (f *GridField) CanAttackGate(column int) bool {
	gate := f.GateInColumn(column)
	if gate == nil || gate.IsDestroyed() {
		return false
	}
	for row := 0; row < GridRows; row++ {
		if enemy := f.EnemyAt(GridPosition{Column: column, Row: row}); enemy.Alive() {
			return false
		}
	}
	return true
}

// RandomEmptyPosition samples uniformly among unoccupied cells, returning the
// sentinel when the grid is full.
func (f *GridField) RandomEmptyPosition() GridPosition {
	if f == nil {
		return NoPosition
	}
	free := make([]GridPosition, 0, f.columns*GridRows)
	for column := 0; column < f.columns; column++ {
		for row := 0; row < GridRows; row++ {
			position := GridPosition{Column: column, Row: row}
			if _, occupied := f.cells[position]; !occupied {
				free = append(free, position)
			}
		}
	}
	if len(free) == 0 {
		return NoPosition
	}
	index := randomIndex(f.rng, len(free))
	if index < 0 {
		return NoPosition
	}
	return free[index]
}

// FreeCellCount returns the number of unoccupied cells.
func (f *GridField) FreeCellCount() int {
	if f == nil {
		return 0
	}
	return f.columns*GridRows - len(f.cells)
}

// AllGatesDestroyed reports whether every gate has fallen.
func (f *GridField) AllGatesDestroyed() bool {
	if f == nil {
		return false
	}
	for _, gate := range f.gates {
		if !gate.IsDestroyed() {
			return false
		}
	}
	return true
}

// Reset clears all occupancy and restores every gate to full health and a
// fresh summon history.
func (f *GridField) Reset(catalog *Catalog) {
	if f == nil {
		return
	}
	f.cells = make(map[GridPosition]*EnemyInstance)
	for column, gateType := range GateLayout(f.columns) {
		f.gates[column] = NewGate(column, catalog.GateConfigFor(gateType))
	}
}
