package system

import (
	"bytes"
	"sync"
)

// bufferPool переиспользует выходные буферы между заданиями,
// чтобы снизить нагрузку на Garbage Collector (GC) при пакетной
// обработке.
var bufferPool = sync.Pool{
	New: func() interface{} {
		return new(bytes.Buffer)
	},
}

// GetBuffer возвращает пустой *bytes.Buffer из пула.
func GetBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

// PutBuffer возвращает буфер в пул для повторного использования.
func PutBuffer(buf *bytes.Buffer) {
	if buf == nil {
		return
	}
	bufferPool.Put(buf)
}
