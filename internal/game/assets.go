package game

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/CrazyForks/wukong-survivors/internal/assets"
	"github.com/CrazyForks/wukong-survivors/internal/commons/logger_config"
)

type AssetState struct {
	Img     *ebiten.Image
	Pending bool
	Err     error
}

// AssetManager tracks async image loads and exposes decoded sprites to the
// draw pass. Rendering falls back to primitive shapes for any key that is
// missing or still loading.
type AssetManager struct {
	loader *assets.Loader
	items  map[string]*AssetState
}

func NewAssetManager(loader *assets.Loader) *AssetManager {
	return &AssetManager{
		loader: loader,
		items:  map[string]*AssetState{},
	}
}

// Request schedules an asset load if not already loaded/pending.
func (am *AssetManager) Request(key, path string) {
	st := am.items[key]

	if st != nil && (st.Pending || st.Img != nil || st.Err != nil) {
		return
	}

	am.items[key] = &AssetState{Pending: true}

	select {
	case am.loader.Req <- assets.Request{Key: key, Path: path}:
	default:
		// Queue full: mark not pending so the request can be retried later.
		am.items[key].Pending = false
		logger_config.Warnf("[assets] request queue full for key=%s", key)
	}
}

// Poll drains loader results and converts decoded images into ebiten images.
// Must run on the update goroutine; ebiten images are not safe to create
// elsewhere.
func (am *AssetManager) Poll() {
	for {
		select {
		case r := <-am.loader.Res:
			st := am.items[r.Key]
			if st == nil {
				st = &AssetState{}
				am.items[r.Key] = st
			}

			st.Pending = false

			if r.Err != nil {
				st.Err = r.Err
				logger_config.Warnf("[assets] load failed key=%s err=%v", r.Key, r.Err)
				continue
			}

			st.Img = ebiten.NewImageFromImage(r.Image)

		default:
			return
		}
	}
}

// Get returns the decoded sprite for key, or nil when unavailable.
func (am *AssetManager) Get(key string) *ebiten.Image {
	st := am.items[key]
	if st == nil {
		return nil
	}

	return st.Img
}

func (am *AssetManager) Status(key string) (loaded bool, pending bool, err error) {
	st := am.items[key]

	if st == nil {
		return false, false, nil
	}
	return st.Img != nil, st.Pending, st.Err
}
