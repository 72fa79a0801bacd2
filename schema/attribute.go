// attribute.go - The fixed set of track attributes a column can map to
package schema

import (
	"fmt"

	"github.com/wilhasse/go-nde/field"
)

// Attribute is a semantic track property. Columns whose name matches an
// attribute name exactly feed that attribute.
type Attribute uint8

const (
	Filename Attribute = iota
	Artist
	Title
	Album
	Year
	Genre
	Comment
	TrackNo
	Length
	Type
	LastUpd
	LastPlay
	Rating
	Tuid2
	PlayCount
	Filetime
	Filesize
	Bitrate
	Disc
	AlbumArtist
	ReplayGainAlbumGain
	ReplayGainTrackGain
	Publisher
	Composer
	BPM
	Discs
	Tracks
	IsPodcast
	PodcastChannel
	PodcastPubdate
	GracenoteFileID
	GracenoteExtData
	Lossless
	Category
	Codec
	Director
	Producer
	Width
	Height
	MimeType
	DateAdded

	NumAttributes = int(DateAdded) + 1
)

// ValueCategory is the kind of value an attribute accepts.
type ValueCategory uint8

const (
	CategoryPath ValueCategory = iota
	CategoryString
	CategoryInteger
	CategoryLength
	CategoryDatetime
	CategoryInt64
)

var categoryNames = [...]string{"path", "string", "integer", "length", "datetime", "int64"}

func (c ValueCategory) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return fmt.Sprintf("category(%d)", uint8(c))
}

// Accepts reports whether v belongs to the category.
func (c ValueCategory) Accepts(v field.Value) bool {
	switch v.(type) {
	case field.Filename:
		return c == CategoryPath
	case field.String:
		return c == CategoryString
	case field.Integer:
		return c == CategoryInteger
	case field.Length:
		return c == CategoryLength
	case field.Datetime:
		return c == CategoryDatetime
	case field.Int64:
		return c == CategoryInt64
	default:
		return false
	}
}

// SQLType is the column type used for the category in exported tables.
func (c ValueCategory) SQLType() ColumnType {
	switch c {
	case CategoryInteger, CategoryLength, CategoryDatetime:
		return TypeInt
	case CategoryInt64:
		return TypeBigInt
	default:
		return TypeText
	}
}

type attrInfo struct {
	column   string // name in the schema record
	key      string // name in exported documents
	category ValueCategory
}

var attrTable = [NumAttributes]attrInfo{
	Filename:            {"filename", "filename", CategoryPath},
	Artist:              {"artist", "artist", CategoryString},
	Title:               {"title", "title", CategoryString},
	Album:               {"album", "album", CategoryString},
	Year:                {"year", "year", CategoryInteger},
	Genre:               {"genre", "genre", CategoryString},
	Comment:             {"comment", "comment", CategoryString},
	TrackNo:             {"trackno", "trackno", CategoryInteger},
	Length:              {"length", "length", CategoryLength},
	Type:                {"type", "type", CategoryInteger},
	LastUpd:             {"lastupd", "lastupd", CategoryDatetime},
	LastPlay:            {"lastplay", "lastplay", CategoryDatetime},
	Rating:              {"rating", "rating", CategoryInteger},
	Tuid2:               {"tuid2", "tuid2", CategoryString},
	PlayCount:           {"playcount", "play_count", CategoryInteger},
	Filetime:            {"filetime", "filetime", CategoryDatetime},
	Filesize:            {"filesize", "filesize", CategoryInt64},
	Bitrate:             {"bitrate", "bitrate", CategoryInteger},
	Disc:                {"disc", "disc", CategoryInteger},
	AlbumArtist:         {"albumartist", "albumartist", CategoryString},
	ReplayGainAlbumGain: {"replaygain_album_gain", "replaygain_album_gain", CategoryString},
	ReplayGainTrackGain: {"replaygain_track_gain", "replaygain_track_gain", CategoryString},
	Publisher:           {"publisher", "publisher", CategoryString},
	Composer:            {"composer", "composer", CategoryString},
	BPM:                 {"bpm", "bpm", CategoryInteger},
	Discs:               {"discs", "discs", CategoryInteger},
	Tracks:              {"tracks", "tracks", CategoryInteger},
	IsPodcast:           {"ispodcast", "is_podcast", CategoryInteger},
	PodcastChannel:      {"podcastchannel", "podcast_channel", CategoryString},
	PodcastPubdate:      {"podcastpubdate", "podcast_pubdate", CategoryDatetime},
	GracenoteFileID:     {"GracenoteFileID", "gracenote_file_id", CategoryString},
	GracenoteExtData:    {"GracenoteExtData", "gracenote_ext_data", CategoryString},
	Lossless:            {"lossless", "lossless", CategoryInteger},
	Category:            {"category", "category", CategoryString},
	Codec:               {"codec", "codec", CategoryString},
	Director:            {"director", "director", CategoryString},
	Producer:            {"producer", "producer", CategoryString},
	Width:               {"width", "width", CategoryInteger},
	Height:              {"height", "height", CategoryInteger},
	MimeType:            {"mimetype", "mimetype", CategoryString},
	DateAdded:           {"dateadded", "date_added", CategoryDatetime},
}

var byColumn = func() map[string]Attribute {
	m := make(map[string]Attribute, NumAttributes)
	for a := range attrTable {
		m[attrTable[a].column] = Attribute(a)
	}
	return m
}()

// All returns every attribute in serialization order.
func All() []Attribute {
	out := make([]Attribute, NumAttributes)
	for i := range out {
		out[i] = Attribute(i)
	}
	return out
}

// Lookup maps a column name onto an attribute. The match is exact and
// case-sensitive.
func Lookup(column string) (Attribute, bool) {
	a, ok := byColumn[column]
	return a, ok
}

// Valid reports whether a is one of the known attributes.
func (a Attribute) Valid() bool { return int(a) < NumAttributes }

// Name is the column name the attribute is matched against.
func (a Attribute) Name() string { return a.info().column }

// Key is the name used for the attribute in exported documents.
func (a Attribute) Key() string { return a.info().key }

// Category is the kind of value the attribute holds.
func (a Attribute) Category() ValueCategory { return a.info().category }

// Accepts reports whether v may be stored under the attribute.
func (a Attribute) Accepts(v field.Value) bool { return a.Valid() && a.Category().Accepts(v) }

func (a Attribute) String() string {
	if !a.Valid() {
		return fmt.Sprintf("attribute(%d)", uint8(a))
	}
	return a.Key()
}

func (a Attribute) info() attrInfo {
	if !a.Valid() {
		return attrInfo{}
	}
	return attrTable[a]
}
