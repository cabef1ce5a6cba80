// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"errors"
	"github.com/SoftbearStudios/glide/server/world"
	jsoniter "github.com/json-iterator/go"
	"reflect"
	"sync"
	"unsafe"
)

// json registers the world type codecs before freezing the config
var json = func() jsoniter.API {
	neverEmpty := func(pointer unsafe.Pointer) bool { return false }

	// Encoders
	jsoniter.RegisterTypeEncoderFunc(reflect.TypeOf(world.ObjectID(0)).String(), encodeObjectID, emptyObjectID)
	jsoniter.RegisterTypeEncoderFunc(reflect.TypeOf(Message{}).String(), encodeMessage, neverEmpty)
	jsoniter.RegisterTypeEncoderFunc(reflect.TypeOf(world.Angle(0)).String(), encodeAngle, emptyAngle)
	jsoniter.RegisterTypeEncoderFunc(reflect.TypeOf(world.Ticks(0)).String(), encodeTicks, emptyTicks)

	// Decoders
	jsoniter.RegisterTypeDecoderFunc(reflect.TypeOf(Message{}).String(), decodeMessage)
	jsoniter.RegisterTypeDecoderFunc(reflect.TypeOf(world.ObjectID(0)).String(), decodeObjectID)
	jsoniter.RegisterTypeDecoderFunc(reflect.TypeOf(world.Angle(0)).String(), decodeAngle)
	jsoniter.RegisterTypeDecoderFunc(reflect.TypeOf(world.Ticks(0)).String(), decodeTicks)

	return jsoniter.Config{
		IndentionStep:                 0,
		MarshalFloatWith6Digits:       true,
		EscapeHTML:                    false,
		SortMapKeys:                   true,
		UseNumber:                     false,
		DisallowUnknownFields:         false,
		TagKey:                        "json",
		OnlyTaggedField:               false,
		ValidateJsonRawMessage:        false,
		ObjectFieldMustBeSimpleString: true,
		CaseSensitive:                 true,
	}.Froze()
}()

func encodeMessage(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	message := (*Message)(ptr)
	stream.WriteVal(message.messageJSON())
}

func encodeAngle(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	angle := *(*world.Angle)(ptr)
	stream.WriteFloat32Lossy(angle.Float())
}

func emptyAngle(ptr unsafe.Pointer) bool {
	return *(*world.Angle)(ptr) == 0
}

func encodeObjectID(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	id := *(*world.ObjectID)(ptr)
	// Quoted hex
	stream.SetBuffer(append(id.AppendText(append(stream.Buffer(), '"')), '"'))
}

func emptyObjectID(ptr unsafe.Pointer) bool {
	return *(*world.ObjectID)(ptr) == world.ObjectIDInvalid
}

func encodeTicks(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	ticks := *(*world.Ticks)(ptr)
	stream.WriteFloat32Lossy(ticks.Float())
}

func emptyTicks(ptr unsafe.Pointer) bool {
	return *(*world.Ticks)(ptr) == 0
}

func decodeAngle(ptr unsafe.Pointer, iter *jsoniter.Iterator) {
	f := iter.ReadFloat32()
	*(*world.Angle)(ptr) = world.ToAngle(f)
}

func decodeTicks(ptr unsafe.Pointer, iter *jsoniter.Iterator) {
	f := iter.ReadFloat32()
	*(*world.Ticks)(ptr) = world.ToTicks(f)
}

func decodeObjectID(ptr unsafe.Pointer, iter *jsoniter.Iterator) {
	if err := (*world.ObjectID)(ptr).UnmarshalText(iter.ReadStringAsSlice()); err != nil {
		iter.ReportError("decode object id", err.Error())
	}
}

// Buffers large enough to hold most commands
var decodeMessagePool = sync.Pool{
	New: func() interface{} {
		buf := make([]byte, 0, 256)
		return &buf
	},
}

func decodeMessage(ptr unsafe.Pointer, topLevelIter *jsoniter.Iterator) {
	bufPtr := decodeMessagePool.Get().(*[]byte)

	// Keep the bytes since "data" may come before "type"
	messageBytes := topLevelIter.SkipAndAppendBytes(*bufPtr)

	// Pool iterator with previous pool
	pool := topLevelIter.Pool()
	iter := pool.BorrowIterator(messageBytes)
	defer pool.ReturnIterator(iter)

	// Pointer to the command type
	var in interface{}

	// One pass if "type" comes first, otherwise a second pass reads "data"
	// c > 0 once the type is known
	for c := 0; c < 3; c++ {
		iter.ResetBytes(messageBytes)
		iter.ReadObjectCB(func(i *jsoniter.Iterator, field string) bool {
			if field == "type" {
				// Not already read
				if in == nil {
					messageTypeBytes := i.ReadStringAsSlice()
					inboundType, ok := inboundMessageTypes[messageType(messageTypeBytes)]
					if !ok {
						inboundType = reflect.TypeOf(InvalidInbound{})
					}
					in = reflect.New(inboundType).Interface()

					if !ok {
						in.(*InvalidInbound).messageType = messageType(messageTypeBytes)
					}

					c++
				} else {
					i.Skip()
				}
				return true
			} else if field == "data" {
				// Found type
				if c > 0 {
					i.ReadVal(in)
					c++
					return false // Finished
				} else {
					i.Skip()
				}
			} else {
				i.Skip()
			}
			return true
		})

		if err := iter.Error; err != nil {
			topLevelIter.Error = err
			return
		}

		// No message type
		if c == 0 {
			topLevelIter.Error = errors.New("no inbound message type")
			return
		}
	}

	// Pool messageBytes
	*bufPtr = messageBytes[:0]
	decodeMessagePool.Put(bufPtr)

	// Store data
	message := (*Message)(ptr)
	message.Data = reflect.Indirect(reflect.ValueOf(in)).Interface()
}
