// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

import (
	"errors"
	"strconv"
)

const ObjectIDInvalid = ObjectID(0)

// ObjectID identifies an Object within a Level.
// Levels allocate them in increasing order so they double as insertion order.
type ObjectID uint32

// ObjectIDAllocator hands out increasing ObjectIDs starting at 1.
type ObjectIDAllocator struct {
	last ObjectID
}

func (allocator *ObjectIDAllocator) Allocate() ObjectID {
	allocator.last++
	if allocator.last == ObjectIDInvalid {
		panic("ran out of object ids")
	}
	return allocator.last
}

func (objectID ObjectID) String() string {
	buf, err := objectID.MarshalText()
	if err != nil {
		return "invalid"
	}
	return string(buf)
}

func (objectID ObjectID) MarshalText() ([]byte, error) {
	if objectID == ObjectIDInvalid {
		return nil, objectIDInvalidErr
	}
	return objectID.AppendText(make([]byte, 0, 8)), nil
}

func (objectID ObjectID) AppendText(buf []byte) []byte {
	if objectID == ObjectIDInvalid {
		panic("invalid object id")
	}
	return strconv.AppendUint(buf, uint64(objectID), 16)
}

var objectIDInvalidErr = errors.New("invalid object id")

func (objectID *ObjectID) UnmarshalText(text []byte) error {
	i, err := strconv.ParseUint(string(text), 16, 32)
	*objectID = ObjectID(i)
	if err == nil && *objectID == ObjectIDInvalid {
		err = objectIDInvalidErr
	}
	return err
}
