package shader

import "sync"

// live maps the program handles of each GL to the Program that owns them, so
// a Binding can restore a program that was reloaded or deleted while it was
// held. GL implementations must be comparable.
var live = struct {
	sync.Mutex
	programs map[GL]map[uint32]*Program
}{programs: make(map[GL]map[uint32]*Program)}

func register(p *Program) {
	live.Lock()
	defer live.Unlock()

	ids, ok := live.programs[p.gl]
	if !ok {
		ids = make(map[uint32]*Program)
		live.programs[p.gl] = ids
	}
	ids[p.id] = p
}

func unregister(gl GL, id uint32) {
	live.Lock()
	defer live.Unlock()

	ids := live.programs[gl]
	delete(ids, id)
	if len(ids) == 0 {
		delete(live.programs, gl)
	}
}

// owner returns the Program holding id in gl, or nil if id isn't one of ours.
func owner(gl GL, id uint32) *Program {
	live.Lock()
	defer live.Unlock()
	return live.programs[gl][id]
}
