package seeder

import "fmt"

type DependencyGraph struct {
	tables   map[string]*Entity
	declared []string
	order    []string
}

func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		tables: make(map[string]*Entity),
	}
}

func (g *DependencyGraph) AddTable(entity Entity) {
	if _, exists := g.tables[entity.Table]; !exists {
		g.declared = append(g.declared, entity.Table)
	}
	e := entity
	g.tables[entity.Table] = &e
}

// BuildInsertionOrder returns tables so that every table follows the tables it
// references. Independent tables keep their declaration order.
func (g *DependencyGraph) BuildInsertionOrder() ([]string, error) {
	visited := make(map[string]bool)
	temp := make(map[string]bool)
	var order []string

	var visit func(string) error
	visit = func(tableName string) error {
		if temp[tableName] {
			return fmt.Errorf("circular dependency detected involving table: %s", tableName)
		}
		if visited[tableName] {
			return nil
		}

		table := g.tables[tableName]
		if table == nil {
			return fmt.Errorf("table %s is referenced but not declared", tableName)
		}

		temp[tableName] = true
		for _, dep := range table.Dependencies {
			if dep != tableName {
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		temp[tableName] = false
		visited[tableName] = true
		order = append(order, tableName)
		return nil
	}

	for _, tableName := range g.declared {
		if !visited[tableName] {
			if err := visit(tableName); err != nil {
				return nil, err
			}
		}
	}

	g.order = order
	return order, nil
}

func (g *DependencyGraph) GetOrder() []string {
	return g.order
}
