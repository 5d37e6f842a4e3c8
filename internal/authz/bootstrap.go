package authz

import "fmt"

// RoleSeed 预置角色定义
type RoleSeed struct {
	Role      string
	Inherits  []string
	Policies  []Policy
	Immutable bool
}

// BuiltinRoleSeeds 系统预置角色矩阵
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role: "waiter",
			Policies: []Policy{
				{Object: "/manage/orders", Action: "GET"},
				{Object: "/manage/orders/:id/status", Action: "PATCH"},
				{Object: "/manage/orders/:id/payment-status", Action: "PATCH"},
				{Object: "/manage/tables", Action: "GET"},
				{Object: "/manage/tables/:id", Action: "GET"},
			},
			Immutable: true,
		},
		{
			Role:     "restaurant_owner",
			Inherits: []string{"waiter"},
			Policies: []Policy{
				{Object: "/manage/restaurants", Action: "*"},
				{Object: "/manage/restaurants/:id", Action: "*"},
				{Object: "/manage/restaurants/:id/waiters", Action: "POST"},
				{Object: "/manage/menus", Action: "*"},
				{Object: "/manage/menus/:id", Action: "*"},
				{Object: "/manage/menu-items", Action: "*"},
				{Object: "/manage/menu-items/:id", Action: "*"},
				{Object: "/manage/menu-items/:id/ingredients", Action: "POST"},
				{Object: "/manage/menu-items/:id/ingredients/:ingredient_id", Action: "DELETE"},
				{Object: "/manage/tables", Action: "*"},
				{Object: "/manage/tables/:id", Action: "*"},
				{Object: "/manage/tables/:id/waiter", Action: "PATCH"},
				{Object: "/manage/categories", Action: "*"},
				{Object: "/manage/categories/:id", Action: "*"},
				{Object: "/manage/upload", Action: "POST"},
			},
			Immutable: true,
		},
		{
			Role: "superuser",
			Policies: []Policy{
				{Object: "/manage/*", Action: "*"},
			},
			Immutable: true,
		},
	}
}

// BootstrapBuiltinRoles 初始化预置角色与默认策略
func (s *Service) BootstrapBuiltinRoles() error {
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}

	changed := false
	for _, seed := range BuiltinRoleSeeds() {
		role, err := NormalizeRole(seed.Role)
		if err != nil {
			return err
		}

		exists, err := s.enforcer.HasNamedGroupingPolicy("g", role, roleAnchor)
		if err != nil {
			return fmt.Errorf("check builtin role failed: %w", err)
		}
		if !exists {
			added, err := s.enforcer.AddNamedGroupingPolicy("g", role, roleAnchor)
			if err != nil {
				return fmt.Errorf("create builtin role failed: %w", err)
			}
			if added {
				changed = true
			}
		}

		for _, parent := range seed.Inherits {
			parentRole, err := NormalizeRole(parent)
			if err != nil {
				return err
			}
			added, err := s.enforcer.AddNamedGroupingPolicy("g", role, parentRole)
			if err != nil {
				return fmt.Errorf("link role inheritance failed: %w", err)
			}
			if added {
				changed = true
			}
		}

		for _, policy := range seed.Policies {
			action := NormalizeAction(policy.Action)
			if action == "" {
				return fmt.Errorf("builtin policy action is required")
			}
			added, err := s.enforcer.AddPolicy(role, NormalizeObject(policy.Object), action)
			if err != nil {
				return fmt.Errorf("add builtin policy failed: %w", err)
			}
			if added {
				changed = true
			}
		}
	}

	if changed {
		return s.saveAndReload()
	}
	return nil
}
