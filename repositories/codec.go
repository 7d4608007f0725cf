package repositories

import (
	"chat-events/domain"
	"chat-events/domain/event"
	"chat-events/errors"
	"fmt"
	"time"

	"google.golang.org/protobuf/encoding/protowire"
)

// Field numbers of the stored event record.
const (
	fieldKind       protowire.Number = 1
	fieldID         protowire.Number = 2
	fieldAt         protowire.Number = 3
	fieldZone       protowire.Number = 4
	fieldZoneOffset protowire.Number = 5
	fieldUser       protowire.Number = 6
	fieldRoom       protowire.Number = 7
	fieldText       protowire.Number = 8
	fieldOtherUser  protowire.Number = 9
)

type record struct {
	kind       event.Kind
	id         int64
	at         int64
	zone       string
	zoneOffset int64
	user       int64
	room       int64
	text       string
	otherUser  int64
}

// encodeEvent writes e in protobuf wire format.
func encodeEvent(e event.DomainEvent) ([]byte, error) {
	if err := event.Validate(e); err != nil {
		return nil, err
	}
	_, offset := e.OccurredAt().Zone()

	var b []byte
	b = appendString(b, fieldKind, string(e.Kind()))
	b = appendSigned(b, fieldID, int64(e.EventID()))
	b = appendSigned(b, fieldAt, e.OccurredAt().UnixNano())
	b = appendString(b, fieldZone, e.OccurredAt().Location().String())
	b = appendSigned(b, fieldZoneOffset, int64(offset))
	b = appendSigned(b, fieldUser, int64(e.UserID()))
	b = appendSigned(b, fieldRoom, int64(e.RoomID()))

	switch evt := e.(type) {
	case event.Comment:
		b = appendString(b, fieldText, evt.Text)
	case event.HighFive:
		b = appendSigned(b, fieldOtherUser, int64(evt.OtherUser))
	}
	return b, nil
}

func decodeEvent(b []byte) (event.DomainEvent, error) {
	var r record
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		b = b[n:]

		switch {
		case typ == protowire.BytesType && (num == fieldKind || num == fieldZone || num == fieldText):
			v, m := protowire.ConsumeString(b)
			if m < 0 {
				return nil, protowire.ParseError(m)
			}
			switch num {
			case fieldKind:
				r.kind = event.Kind(v)
			case fieldZone:
				r.zone = v
			case fieldText:
				r.text = v
			}
			n = m
		case typ == protowire.VarintType:
			v, m := protowire.ConsumeVarint(b)
			if m < 0 {
				return nil, protowire.ParseError(m)
			}
			signed := protowire.DecodeZigZag(v)
			switch num {
			case fieldID:
				r.id = signed
			case fieldAt:
				r.at = signed
			case fieldZoneOffset:
				r.zoneOffset = signed
			case fieldUser:
				r.user = signed
			case fieldRoom:
				r.room = signed
			case fieldOtherUser:
				r.otherUser = signed
			}
			n = m
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
		}
		b = b[n:]
	}
	return r.toEvent()
}

func (r record) toEvent() (event.DomainEvent, error) {
	header := event.Header{
		ID:   event.ID(r.id),
		At:   time.Unix(0, r.at).In(r.location()),
		User: domain.UserID(r.user),
		Room: domain.RoomID(r.room),
	}
	switch r.kind {
	case event.EnterRoomKind:
		return event.EnterRoom{Header: header}, nil
	case event.LeaveRoomKind:
		return event.LeaveRoom{Header: header}, nil
	case event.CommentKind:
		return event.Comment{Header: header, Text: r.text}, nil
	case event.HighFiveKind:
		return event.HighFive{Header: header, OtherUser: domain.UserID(r.otherUser)}, nil
	default:
		return nil, fmt.Errorf("decode %q: %w", r.kind, errors.ErrUnrecognizedEvent)
	}
}

// location restores the zone an event was stamped in. Zones that are not in
// the tz database, like parsed fixed offsets, come back as a fixed zone.
func (r record) location() *time.Location {
	switch {
	case r.zone == "UTC", r.zone == "" && r.zoneOffset == 0:
		return time.UTC
	case r.zone == "":
		return time.FixedZone("", int(r.zoneOffset))
	case r.zone == "Local":
		return time.Local
	}
	// An abbreviation like "CET" may reload as a zone with another offset.
	if loc, err := time.LoadLocation(r.zone); err == nil {
		if _, offset := time.Unix(0, r.at).In(loc).Zone(); offset == int(r.zoneOffset) {
			return loc
		}
	}
	return time.FixedZone(r.zone, int(r.zoneOffset))
}

func appendString(b []byte, num protowire.Number, v string) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, v)
}

func appendSigned(b []byte, num protowire.Number, v int64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, protowire.EncodeZigZag(v))
}
