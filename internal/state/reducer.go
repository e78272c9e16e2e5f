package state

import (
	"slices"

	"github.com/rosterhq/roster/internal/record"
)

// Codec supplies the two constructors the generic reducer needs without
// knowing the concrete record type.
type Codec[R record.Record[R]] struct {
	// Fresh returns an empty record with idle metadata.
	Fresh func() R
	// FromData builds a record from a decoded JSON payload.
	FromData func(map[string]any) R
}

// Slice holds one domain type's synchronized state: the current record and,
// for admin listing, an optional collection. The list is absent while a
// LIST fetch is in flight and replaced wholesale on success.
type Slice[R record.Record[R]] struct {
	Current      R
	List         []R
	HasList      bool
	ListFetching bool
}

// Reduce interprets a domain action against the slice and returns the next
// slice. It is a pure function: inputs are never mutated.
//
// The verb x status transition table:
//
//	verb     START          SUCCESS                                ERROR
//	CREATE   set fetching   clear fetching/new/dirty, create hook  clear fetching
//	UPDATE   set fetching   clear fetching/dirty, update hook,     clear fetching
//	                        splice into list by id, no-op when
//	                        the id matches nothing
//	DELETE   set fetching   remove matching id from list           clear fetching
//	LOGIN    set fetching   replace current from payload           clear fetching
//	HYDRATE  set fetching   replace current from payload           clear fetching
//	LOGOUT   set fetching   fresh current record, drop list        clear fetching
//	LIST     mark list      replace list from payload              drop list
//	         fetching,
//	         drop list
//	NEW      (sync) fresh current record marked new
//	EDIT     (sync) update field on current, or on the list element
//	         addressed by TargetID
//
// A failed UPDATE keeps the dirty flag: the local edits are still
// unpersisted and clearing it would make the UI forget there is anything
// left to save.
func Reduce[R record.Record[R]](s Slice[R], a Action, c Codec[R]) Slice[R] {
	if a.Kind != KindDomain || a.Verb.recordless() {
		return s
	}

	switch a.Status {
	case StatusStart:
		if a.Verb == VerbList {
			s.List = nil
			s.HasList = false
			s.ListFetching = true
			return s
		}
		s.Current = s.Current.WithMeta(s.Current.Meta().SetFetching())
		return s

	case StatusError:
		if a.Verb == VerbList {
			s.List = nil
			s.HasList = false
			s.ListFetching = false
			return s
		}
		s.Current = s.Current.WithMeta(s.Current.Meta().ClearFetching())
		return s

	case StatusSuccess:
		return reduceSuccess(s, a, c)
	}

	// Synchronous verbs carry no status.
	switch a.Verb {
	case VerbNew:
		fresh := c.Fresh()
		s.Current = fresh.WithMeta(fresh.Meta().SetNew())
		return s

	case VerbEdit:
		if a.TargetID == "" {
			s.Current = s.Current.UpdateField(a.Field, a.Value)
			return s
		}
		if !s.HasList {
			return s
		}
		idx := slices.IndexFunc(s.List, func(r R) bool { return r.ID() == a.TargetID })
		if idx < 0 {
			return s
		}
		list := slices.Clone(s.List)
		list[idx] = list[idx].UpdateField(a.Field, a.Value)
		s.List = list
		return s
	}
	return s
}

func reduceSuccess[R record.Record[R]](s Slice[R], a Action, c Codec[R]) Slice[R] {
	switch a.Verb {
	case VerbCreate:
		cur := s.Current
		cur = cur.WithMeta(cur.Meta().ClearFetching().ClearNew().ClearDirty())
		if f, ok := any(cur).(record.CreateFinisher[R]); ok {
			cur = f.AfterCreateSuccess()
		}
		s.Current = cur
		return s

	case VerbUpdate:
		upd := c.FromData(a.Data)
		upd = upd.WithMeta(upd.Meta().ClearFetching().ClearDirty())
		if f, ok := any(upd).(record.UpdateFinisher[R]); ok {
			upd = f.AfterUpdateSuccess()
		}
		switch {
		case upd.ID() == s.Current.ID():
			s.Current = upd
		case s.HasList:
			idx := slices.IndexFunc(s.List, func(r R) bool { return r.ID() == upd.ID() })
			if idx < 0 {
				return s
			}
			list := slices.Clone(s.List)
			list[idx] = upd
			s.List = list
			// The START above set fetching on the current record even
			// though the update targeted a list element.
			s.Current = s.Current.WithMeta(s.Current.Meta().ClearFetching())
		default:
			// Target matches nothing; favor availability over strictness.
			return s
		}
		return s

	case VerbDelete:
		if s.HasList {
			idx := slices.IndexFunc(s.List, func(r R) bool { return r.ID() == a.TargetID })
			if idx >= 0 {
				s.List = slices.Delete(slices.Clone(s.List), idx, idx+1)
			}
		}
		s.Current = s.Current.WithMeta(s.Current.Meta().ClearFetching())
		return s

	case VerbLogin, VerbHydrate:
		s.Current = c.FromData(a.Data)
		return s

	case VerbLogout:
		s.Current = c.Fresh()
		s.List = nil
		s.HasList = false
		s.ListFetching = false
		return s

	case VerbList:
		list := make([]R, 0, len(a.List))
		for _, d := range a.List {
			list = append(list, c.FromData(d))
		}
		s.List = list
		s.HasList = true
		s.ListFetching = false
		return s
	}

	s.Current = s.Current.WithMeta(s.Current.Meta().ClearFetching())
	return s
}
