// Package hierarchy содержит ядро: обход дерева подразделений,
// определение подразделения сотрудника и расчёт статистики.
package hierarchy

import (
	"context"
	"time"

	"github.com/org-hierarchy-api/internal/domain"
)

// Store - доступ к текущему состоянию дерева в хранилище
type Store interface {
	// Container загружает узел вместе с руководителем
	Container(ctx context.Context, ref domain.NodeRef) (domain.Container, error)
	// Children возвращает прямых потомков в порядке создания
	Children(ctx context.Context, ref domain.NodeRef) ([]domain.Container, error)
	// Members возвращает участников группы в порядке вступления
	Members(ctx context.Context, teamID int64) ([]domain.Employee, error)
	// Roles возвращает индекс ролей сотрудника
	Roles(ctx context.Context, employeeID int64) (*domain.Roles, error)
}

// Engine выполняет агрегирующие запросы над деревом
type Engine struct {
	store Store
	now   func() time.Time
}

// NewEngine создаёт движок, использующий текущее время
func NewEngine(store Store) *Engine {
	return &Engine{store: store, now: time.Now}
}

// WithClock подменяет источник времени
func (e *Engine) WithClock(now func() time.Time) *Engine {
	return &Engine{store: e.store, now: now}
}

// Node - узел развёрнутого поддерева
type Node struct {
	Unit     domain.Container
	Children []*Node
	Members  []domain.Employee
}

// Employees возвращает всех сотрудников, достижимых из узла.
// Обход в глубину: руководитель узла, затем поддеревья детей по порядку,
// для группы - её участники. Повторы не удаляются.
func (e *Engine) Employees(ctx context.Context, ref domain.NodeRef) ([]domain.Employee, error) {
	unit, err := e.store.Container(ctx, ref)
	if err != nil {
		return nil, err
	}
	return e.collect(ctx, unit, []domain.Employee{})
}

func (e *Engine) collect(ctx context.Context, unit domain.Container, out []domain.Employee) ([]domain.Employee, error) {
	ref := unit.Ref()
	if ref.Kind == domain.KindTeam {
		members, err := e.store.Members(ctx, ref.ID)
		if err != nil {
			return nil, err
		}
		return append(out, members...), nil
	}

	if leader := unit.CurrentLeader(); leader != nil {
		out = append(out, *leader)
	}

	children, err := e.store.Children(ctx, ref)
	if err != nil {
		return nil, err
	}
	for _, child := range children {
		if out, err = e.collect(ctx, child, out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Statistics считает статистику по всем сотрудникам узла
func (e *Engine) Statistics(ctx context.Context, ref domain.NodeRef) (Statistics, error) {
	employees, err := e.Employees(ctx, ref)
	if err != nil {
		return Statistics{}, err
	}
	return ComputeStatistics(employees, e.now())
}

// SubdivisionName возвращает название подразделения сотрудника
func (e *Engine) SubdivisionName(ctx context.Context, employeeID int64) (string, error) {
	roles, err := e.store.Roles(ctx, employeeID)
	if err != nil {
		return "", err
	}
	return ResolveSubdivision(roles), nil
}

// Tree разворачивает поддерево узла целиком
func (e *Engine) Tree(ctx context.Context, ref domain.NodeRef) (*Node, error) {
	unit, err := e.store.Container(ctx, ref)
	if err != nil {
		return nil, err
	}
	return e.expand(ctx, unit)
}

func (e *Engine) expand(ctx context.Context, unit domain.Container) (*Node, error) {
	node := &Node{Unit: unit}
	ref := unit.Ref()

	if ref.Kind == domain.KindTeam {
		members, err := e.store.Members(ctx, ref.ID)
		if err != nil {
			return nil, err
		}
		node.Members = members
		return node, nil
	}

	children, err := e.store.Children(ctx, ref)
	if err != nil {
		return nil, err
	}
	node.Children = make([]*Node, 0, len(children))
	for _, child := range children {
		sub, err := e.expand(ctx, child)
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, sub)
	}
	return node, nil
}
