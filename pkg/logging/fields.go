package logging

import "time"

func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Any(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Duration records d in its String form
func Duration(key string, d time.Duration) Field {
	return Field{Key: key, Value: d.String()}
}

// Error records err under "error"; a nil error records null
func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

// Domain field helpers

func Component(name string) Field {
	return String("component", name)
}

func Template(id string) Field {
	return String("template", id)
}

func Device(name string) Field {
	return String("device", name)
}

func Vertex(id string) Field {
	return String("vertex", id)
}

func Edge(id string) Field {
	return String("edge", id)
}

func Protein(name string) Field {
	return String("protein", name)
}

func Mode(mode string) Field {
	return String("mode", mode)
}

func RunID(id string) Field {
	return String("run_id", id)
}

func Path(p string) Field {
	return String("path", p)
}

func Count(n int) Field {
	return Int("count", n)
}

func Latency(d time.Duration) Field {
	return Duration("latency", d)
}
