// Package codec implements ProjectCodec: deterministic JSON
// serialization of the whole scene into the ".tiles" project format.
// Grounded on encoding/json in the style of cogentcore's jsonx helpers
// (load-into-struct, no custom wire format), using
// github.com/Masterminds/semver/v3 to gate the document's version
// field against future incompatible majors and
// golang.org/x/text/unicode/norm to normalize layer/group names on the
// way in.
package codec

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"golang.org/x/text/unicode/norm"

	"tileloom.dev/tileloom/idgen"
	"tileloom.dev/tileloom/pathdata"
	"tileloom.dev/tileloom/scene"
	"tileloom.dev/tileloom/tileerr"
)

// FormatVersion is the current document version this package writes.
const FormatVersion = "1.0.0"

// Metadata is the project-level information stored alongside layers
// and groups.
type Metadata struct {
	TileSize   int
	CreatedAt  time.Time
	ModifiedAt time.Time
}

// document is the on-disk JSON shape, matching the project file format
// exactly: version, appVersion, metadata, layers (with nested
// entities), entityGroups.
type document struct {
	Version      string         `json:"version"`
	AppVersion   string         `json:"appVersion"`
	Metadata     metadataDoc    `json:"metadata"`
	Layers       []layerDoc     `json:"layers"`
	EntityGroups []groupDoc     `json:"entityGroups"`
}

type metadataDoc struct {
	TileSize   int       `json:"tileSize"`
	CreatedAt  time.Time `json:"createdAt"`
	ModifiedAt time.Time `json:"modifiedAt"`
}

type layerDoc struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Order      int            `json:"order"`
	Visible    bool           `json:"visible"`
	Locked     bool           `json:"locked"`
	Background *backgroundDoc `json:"background"`
	Entities   []entityRefDoc `json:"entities"`
}

type backgroundDoc struct {
	Color string  `json:"color"`
	Alpha float32 `json:"alpha"`
}

type entityRefDoc struct {
	MirrorGroupID string       `json:"mirrorGroupId"`
	Order         int          `json:"order"`
	FabricObject  fabricObject `json:"fabricObject"`
}

type groupDoc struct {
	ID                   string   `json:"id"`
	Name                 string   `json:"name"`
	MemberMirrorGroupIDs []string `json:"memberMirrorGroupIds"`
	LayerID              string   `json:"layerId"`
}

// fabricObject is one entity's transform, appearance, and kind-specific
// geometry, named after the wire field the project format calls it.
type fabricObject struct {
	Kind string `json:"kind"`

	Left     float32 `json:"left"`
	Top      float32 `json:"top"`
	ScaleX   float32 `json:"scaleX"`
	ScaleY   float32 `json:"scaleY"`
	AngleDeg float32 `json:"angle"`
	FlipX    bool    `json:"flipX"`
	FlipY    bool    `json:"flipY"`
	SkewX    float32 `json:"skewX"`
	SkewY    float32 `json:"skewY"`
	OriginX  string  `json:"originX"`
	OriginY  string  `json:"originY"`

	Fill        *string `json:"fill"`
	Stroke      *string `json:"stroke"`
	StrokeWidth float32 `json:"strokeWidth"`
	Opacity     float32 `json:"opacity"`

	Path        string  `json:"path,omitempty"`
	Width       float32 `json:"width,omitempty"`
	Height      float32 `json:"height,omitempty"`
	Radius      float32 `json:"radius,omitempty"`
	ImageData   string  `json:"imageData,omitempty"`
	ImageWidth  int     `json:"imageWidth,omitempty"`
	ImageHeight int     `json:"imageHeight,omitempty"`

	Children []fabricObject `json:"children,omitempty"`
}

// Encode serializes the given store, layers, and groups into the
// project document format, with indentation for readability (the
// format spec treats whitespace as informative only).
func Encode(store *scene.CanonicalStore, layers *scene.LayerTable, groups *scene.EntityGroupIndex, meta Metadata, appVersion string) ([]byte, error) {
	doc := document{
		Version:    FormatVersion,
		AppVersion: appVersion,
		Metadata: metadataDoc{
			TileSize:   meta.TileSize,
			CreatedAt:  meta.CreatedAt,
			ModifiedAt: meta.ModifiedAt,
		},
	}

	for _, l := range layers.All() {
		ld := layerDoc{
			ID:      string(l.ID),
			Name:    l.Name,
			Order:   l.Order,
			Visible: l.Visible,
			Locked:  l.Locked,
		}
		if l.Background != nil {
			ld.Background = &backgroundDoc{Color: string(l.Background.Color), Alpha: l.Background.Alpha}
		}
		for order, e := range store.ByLayer(l.ID) {
			ld.Entities = append(ld.Entities, entityRefDoc{
				MirrorGroupID: string(e.ID),
				Order:         order,
				FabricObject:  encodeEntity(e),
			})
		}
		doc.Layers = append(doc.Layers, ld)
	}

	for _, g := range groups.All() {
		members := make([]string, len(g.Members))
		for i, m := range g.Members {
			members[i] = string(m)
		}
		doc.EntityGroups = append(doc.EntityGroups, groupDoc{
			ID: string(g.ID), Name: g.Name, MemberMirrorGroupIDs: members, LayerID: string(g.LayerID),
		})
	}

	return json.MarshalIndent(doc, "", "  ")
}

func encodeEntity(e scene.Entity) fabricObject {
	fo := fabricObject{
		Kind:        string(e.Geometry.Kind),
		Left:        e.Transform.Left,
		Top:         e.Transform.Top,
		ScaleX:      e.Transform.ScaleX,
		ScaleY:      e.Transform.ScaleY,
		AngleDeg:    e.Transform.AngleDeg,
		FlipX:       e.Transform.FlipX,
		FlipY:       e.Transform.FlipY,
		SkewX:       e.Transform.SkewX,
		SkewY:       e.Transform.SkewY,
		OriginX:     string(e.Transform.OriginX),
		OriginY:     string(e.Transform.OriginY),
		StrokeWidth: e.Appearance.StrokeWidth,
		Opacity:     e.Appearance.Opacity,
	}
	if e.Appearance.Fill != nil {
		s := string(*e.Appearance.Fill)
		fo.Fill = &s
	}
	if e.Appearance.Stroke != nil {
		s := string(*e.Appearance.Stroke)
		fo.Stroke = &s
	}

	switch e.Geometry.Kind {
	case scene.KindPath:
		fo.Path = e.Geometry.Path.String(3)
	case scene.KindRect:
		fo.Width, fo.Height = e.Geometry.Width, e.Geometry.Height
	case scene.KindCircle:
		fo.Radius = e.Geometry.Radius
	case scene.KindImage:
		fo.ImageData = string(e.Geometry.ImageData)
		fo.ImageWidth, fo.ImageHeight = e.Geometry.ImageWidth, e.Geometry.ImageHeight
	case scene.KindSVGGroup:
		for _, c := range e.Geometry.Children {
			fo.Children = append(fo.Children, encodeEntity(c))
		}
	}
	return fo
}

// Decode parses a project document and rebuilds a fresh store, layer
// table, and group index from it. Missing required fields or an
// incompatible major version fail with tileerr.MalformedInput.
func Decode(data []byte, ids *idgen.Generator) (*scene.CanonicalStore, *scene.LayerTable, *scene.EntityGroupIndex, Metadata, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, nil, nil, Metadata{}, fmt.Errorf("codec: malformed project JSON: %w", tileerr.MalformedInput)
	}
	if doc.Version == "" || len(doc.Layers) == 0 {
		return nil, nil, nil, Metadata{}, fmt.Errorf("codec: project document missing required fields: %w", tileerr.MalformedInput)
	}
	if err := checkVersion(doc.Version); err != nil {
		return nil, nil, nil, Metadata{}, err
	}

	store := scene.NewCanonicalStore()
	layers := scene.NewLayerTable(ids)
	defaultLayerID := layers.All()[0].ID

	for _, ld := range doc.Layers {
		observeID(ids, ld.ID)
		l := scene.Layer{
			ID:      idgen.ID(ld.ID),
			Name:    normalizeName(ld.Name),
			Order:   ld.Order,
			Visible: ld.Visible,
			Locked:  ld.Locked,
		}
		if ld.Background != nil {
			l.Background = &scene.Background{Color: scene.Color(ld.Background.Color), Alpha: ld.Background.Alpha}
		}
		layers.Restore(l)

		for _, ref := range ld.Entities {
			observeID(ids, ref.MirrorGroupID)
			e, err := decodeEntity(ref.MirrorGroupID, idgen.ID(ld.ID), ref.FabricObject)
			if err != nil {
				return nil, nil, nil, Metadata{}, err
			}
			store.Add(e)
		}
	}
	// Move the placeholder layer last: if a document layer shares its id,
	// the id lookup (last index wins) then names the placeholder.
	layers.Reorder(0, len(layers.All())-1)
	if err := layers.Delete(defaultLayerID); err != nil {
		return nil, nil, nil, Metadata{}, fmt.Errorf("codec: %w", err)
	}

	groups := scene.NewEntityGroupIndex(store, ids)
	for _, gd := range doc.EntityGroups {
		observeID(ids, gd.ID)
		members := make([]idgen.ID, len(gd.MemberMirrorGroupIDs))
		for i, m := range gd.MemberMirrorGroupIDs {
			members[i] = idgen.ID(m)
		}
		groups.Restore(scene.EntityGroup{
			ID: idgen.ID(gd.ID), Name: normalizeName(gd.Name), Members: members, LayerID: idgen.ID(gd.LayerID),
		})
	}

	meta := Metadata{
		TileSize:   doc.Metadata.TileSize,
		CreatedAt:  doc.Metadata.CreatedAt,
		ModifiedAt: doc.Metadata.ModifiedAt,
	}
	return store, layers, groups, meta, nil
}

func decodeEntity(id, layerID idgen.ID, fo fabricObject) (scene.Entity, error) {
	geo, err := decodeGeometry(fo)
	if err != nil {
		return scene.Entity{}, err
	}
	e := scene.NewEntity(id, geo, layerID)
	e.Transform = scene.Transform{
		Left: fo.Left, Top: fo.Top,
		ScaleX: fo.ScaleX, ScaleY: fo.ScaleY,
		AngleDeg: fo.AngleDeg,
		FlipX:    fo.FlipX, FlipY: fo.FlipY,
		SkewX: fo.SkewX, SkewY: fo.SkewY,
		OriginX: scene.OriginX(orDefault(fo.OriginX, string(scene.OriginLeft))),
		OriginY: scene.OriginY(orDefault(fo.OriginY, string(scene.OriginTop))),
	}
	e.Appearance = scene.Appearance{StrokeWidth: fo.StrokeWidth, Opacity: fo.Opacity}
	if fo.Fill != nil {
		c := scene.Color(*fo.Fill)
		e.Appearance.Fill = &c
	}
	if fo.Stroke != nil {
		c := scene.Color(*fo.Stroke)
		e.Appearance.Stroke = &c
	}
	return e, nil
}

func decodeGeometry(fo fabricObject) (scene.Geometry, error) {
	switch scene.Kind(fo.Kind) {
	case scene.KindPath:
		p, err := pathdata.Parse(fo.Path)
		if err != nil {
			return scene.Geometry{}, fmt.Errorf("codec: malformed path data: %w", tileerr.MalformedInput)
		}
		return scene.Geometry{Kind: scene.KindPath, Path: p}, nil
	case scene.KindRect:
		return scene.Geometry{Kind: scene.KindRect, Width: fo.Width, Height: fo.Height}, nil
	case scene.KindCircle:
		return scene.Geometry{Kind: scene.KindCircle, Radius: fo.Radius}, nil
	case scene.KindImage:
		return scene.Geometry{
			Kind: scene.KindImage, ImageData: []byte(fo.ImageData),
			ImageWidth: fo.ImageWidth, ImageHeight: fo.ImageHeight,
		}, nil
	case scene.KindSVGGroup:
		children := make([]scene.Entity, 0, len(fo.Children))
		for i, c := range fo.Children {
			ce, err := decodeEntity(idgen.ID(fmt.Sprintf("child-%d", i)), "", c)
			if err != nil {
				return scene.Geometry{}, err
			}
			children = append(children, ce)
		}
		return scene.Geometry{Kind: scene.KindSVGGroup, Children: children}, nil
	default:
		return scene.Geometry{}, fmt.Errorf("codec: unknown entity kind %q: %w", fo.Kind, tileerr.MalformedInput)
	}
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// normalizeName normalizes a display name to NFC so names imported
// with different Unicode decompositions compare and sort consistently.
func normalizeName(s string) string {
	return norm.NFC.String(s)
}

// checkVersion accepts any 1.x.x document and rejects a higher major as
// malformed rather than attempting to interpret an unrecognized shape.
func checkVersion(v string) error {
	parsed, err := semver.NewVersion(v)
	if err != nil {
		return fmt.Errorf("codec: unparseable version %q: %w", v, tileerr.MalformedInput)
	}
	constraint, err := semver.NewConstraint("^1.0.0")
	if err != nil {
		return err
	}
	if !constraint.Check(parsed) {
		return fmt.Errorf("codec: unsupported project version %q: %w", v, tileerr.MalformedInput)
	}
	return nil
}

// observeID advances ids's counters so a future Next() call can never
// collide with an id loaded from disk, of the form "kind-000042".
func observeID(ids *idgen.Generator, raw string) {
	i := strings.LastIndex(raw, "-")
	if i < 0 {
		return
	}
	kind, numStr := raw[:i], raw[i+1:]
	n, err := strconv.ParseInt(numStr, 10, 64)
	if err != nil {
		return
	}
	ids.Observe(kind, n)
}
