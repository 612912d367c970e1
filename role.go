package main

// ClassifyRole picks the role of the strictly dominant stat among defense,
// magic and attack. Ties (including all zero) are hybrid.
func ClassifyRole(s DerivedStats) Role {
	a, d, m := s.Attack, s.Defense, s.Magic
	switch {
	case d > a && d > m:
		return RoleTank
	case m > a && m > d:
		return RoleSupport
	case a > d && a > m:
		return RoleAttacker
	}
	return RoleHybrid
}
