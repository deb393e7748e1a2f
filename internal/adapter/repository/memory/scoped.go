package memory

// scoped reúne as operações comuns a agregados isolados por tenant
type scoped[T any] struct {
	base
	table    func(d *dataset) table[T]
	key      func(v *T) (tenantID, id string)
	notFound error
}

func (s scoped[T]) find(tenantID, id string) (*T, error) {
	var (
		v  *T
		ok bool
	)
	s.read(func(d *dataset) { v, ok = s.table(d).get(id) })
	if !ok {
		return nil, s.notFound
	}
	if t, _ := s.key(v); t != tenantID {
		return nil, s.notFound
	}
	return v, nil
}

// insert grava v depois de verificar unique, que recebe os dados atuais
func (s scoped[T]) insert(v *T, unique func(d *dataset) error) error {
	return s.write(func(d *dataset) error {
		if unique != nil {
			if err := unique(d); err != nil {
				return err
			}
		}
		_, id := s.key(v)
		s.table(d).put(id, v)
		return nil
	})
}

func (s scoped[T]) replace(v *T, unique func(d *dataset) error) error {
	return s.write(func(d *dataset) error {
		tenantID, id := s.key(v)
		cur, ok := s.table(d).rows[id]
		if !ok {
			return s.notFound
		}
		if t, _ := s.key(cur); t != tenantID {
			return s.notFound
		}
		if unique != nil {
			if err := unique(d); err != nil {
				return err
			}
		}
		s.table(d).put(id, v)
		return nil
	})
}

func (s scoped[T]) delete(tenantID, id string) error {
	return s.write(func(d *dataset) error {
		cur, ok := s.table(d).rows[id]
		if !ok {
			return s.notFound
		}
		if t, _ := s.key(cur); t != tenantID {
			return s.notFound
		}
		s.table(d).remove(id)
		return nil
	})
}

func (s scoped[T]) list(tenantID string, keep func(v *T) bool, less func(a, b *T) bool) []*T {
	var out []*T
	s.read(func(d *dataset) {
		out = s.table(d).filter(func(v *T) bool {
			if t, _ := s.key(v); t != tenantID {
				return false
			}
			return keep == nil || keep(v)
		}, less)
	})
	return out
}
