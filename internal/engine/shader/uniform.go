package shader

import "github.com/bloeys/gglm/gglm"

// Uniform setters upload to p only while p is the driver's current program;
// otherwise they return ErrNotCurrent. A name the program does not declare
// (or that the compiler optimised away) is silently ignored.

// location resolves name against p, caching misses as -1.
func (p *Program) location(name string) (int32, error) {
	if p == nil || p.id == 0 || p.drv.CurrentProgram() != p.id {
		return -1, ErrNotCurrent
	}
	if loc, ok := p.locations[name]; ok {
		return loc, nil
	}
	loc := p.drv.UniformLocation(p.id, name)
	p.locations[name] = loc
	return loc, nil
}

// SetFloat sets a float uniform.
func (p *Program) SetFloat(name string, v float32) error {
	loc, err := p.location(name)
	if err != nil || loc < 0 {
		return err
	}
	p.drv.Uniform1f(loc, v)
	return nil
}

// SetInt sets an int or sampler uniform.
func (p *Program) SetInt(name string, v int32) error {
	loc, err := p.location(name)
	if err != nil || loc < 0 {
		return err
	}
	p.drv.Uniform1i(loc, v)
	return nil
}

// SetBool uploads v as an int, which is how GLSL bool uniforms are set.
func (p *Program) SetBool(name string, v bool) error {
	var i int32
	if v {
		i = 1
	}
	return p.SetInt(name, i)
}

// SetVec2 sets a vec2 uniform.
func (p *Program) SetVec2(name string, v *gglm.Vec2) error {
	loc, err := p.location(name)
	if err != nil || loc < 0 {
		return err
	}
	p.drv.Uniform2f(loc, v.Data[0], v.Data[1])
	return nil
}

// SetVec3 sets a vec3 uniform.
func (p *Program) SetVec3(name string, v *gglm.Vec3) error {
	loc, err := p.location(name)
	if err != nil || loc < 0 {
		return err
	}
	p.drv.Uniform3f(loc, v.Data[0], v.Data[1], v.Data[2])
	return nil
}

// SetVec4 sets a vec4 uniform.
func (p *Program) SetVec4(name string, v *gglm.Vec4) error {
	loc, err := p.location(name)
	if err != nil || loc < 0 {
		return err
	}
	p.drv.Uniform4f(loc, v.Data[0], v.Data[1], v.Data[2], v.Data[3])
	return nil
}

// SetMat4 uploads m in gglm's column-major order.
func (p *Program) SetMat4(name string, m *gglm.Mat4) error {
	loc, err := p.location(name)
	if err != nil || loc < 0 {
		return err
	}
	var flat [16]float32
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			flat[c*4+r] = m.Data[c][r]
		}
	}
	p.drv.UniformMatrix4f(loc, flat)
	return nil
}
