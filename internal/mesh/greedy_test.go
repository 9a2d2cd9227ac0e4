package mesh

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/voxelcore/internal/world/block"
)

func TestBuild_SingleBlock(t *testing.T) {
	w := testWorld(t, true)
	w.SetBlockWorld(at(5, 5, 5), block.Stone)

	m := Build(w, center, 1)

	assert.Equal(t, 6, m.Quads)
	assert.Len(t, m.Vertices, 24)
	assert.Len(t, m.Indices, 36)
	for f := Face(0); f < FaceCount; f++ {
		assert.Equal(t, 1, m.Area[f], "грань %s", f)
	}
	for _, v := range m.Vertices {
		assert.Equal(t, float32(1), v.AO, "одиночный блок не затенён")
		assert.Equal(t, float32(1), v.Light)
	}
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, m.Indices[:6])
	assert.Equal(t, []uint32{4, 5, 6, 4, 6, 7}, m.Indices[6:12])
}

func TestBuild_StonePairHasNoInternalFaces(t *testing.T) {
	w := testWorld(t, true)
	w.SetBlockWorld(at(5, 5, 5), block.Stone)
	w.SetBlockWorld(at(6, 5, 5), block.Stone)

	m := Build(w, center, 1)

	assert.Equal(t, 6, m.Quads, "Пара сливается в параллелепипед 2x1x1")
	assert.Equal(t, 1, m.Area[FacePosX])
	assert.Equal(t, 1, m.Area[FaceNegX])
	assert.Equal(t, 2, m.Area[FacePosY])
	assert.Equal(t, 2, m.Area[FaceNegY])
	assert.Equal(t, 2, m.Area[FacePosZ])
	assert.Equal(t, 2, m.Area[FaceNegZ])

	// Ни одна вершина не лежит на общей плоскости x = 6 внутри ±X граней
	for i := 0; i < m.Quads; i++ {
		quad := quadVertices(m, i)
		allOnPlane := true
		for _, v := range quad {
			if v.Position[0] != 6 {
				allOnPlane = false
			}
		}
		assert.False(t, allOnPlane, "Внутренняя грань на x = 6")
	}
}

func TestBuild_FullChunkConservation(t *testing.T) {
	w := testWorld(t, false)
	fillChunk(w, center, block.Stone)

	m := Build(w, center, 1)

	for f := Face(0); f < FaceCount; f++ {
		assert.Equal(t, 256, m.Area[f], "грань %s", f)
	}
	assert.Equal(t, 6, m.Quads, "Каждое направление сливается в один прямоугольник")

	var maxU, maxV float32
	for _, v := range m.Vertices {
		maxU = max(maxU, v.UV[0])
		maxV = max(maxV, v.UV[1])
	}
	assert.Equal(t, float32(16), maxU, "UV тайлится по размеру прямоугольника")
	assert.Equal(t, float32(16), maxV)
}

func TestBuild_MatchesBruteForce(t *testing.T) {
	palette := []block.BlockID{block.Air, block.Air, block.Stone, block.Dirt, block.Glass, block.Leaves, block.Water, block.Rose}
	rng := rand.New(rand.NewSource(7))

	w := testWorld(t, true)
	for _, key := range w.ChunkKeys() {
		for i := 0; i < 1500; i++ {
			pos := key.ChunkOrigin()
			pos.X += rng.Intn(16)
			pos.Y += rng.Intn(16)
			pos.Z += rng.Intn(16)
			w.SetBlockWorld(pos, palette[rng.Intn(len(palette))])
		}
	}

	m := Build(w, center, 1)
	expected := bruteForceArea(w, center)

	assert.Equal(t, expected, m.Area)
	total := 0
	for _, a := range expected {
		total += a
	}
	assert.LessOrEqual(t, m.Quads, total, "Слияние только уменьшает число прямоугольников")
	assert.Equal(t, m.Quads*4, len(m.Vertices))
	assert.Equal(t, m.Quads*6, len(m.Indices))
}

func TestBuild_CrossChunkCulling(t *testing.T) {
	w := testWorld(t, true)
	w.SetBlockWorld(at(15, 5, 5), block.Stone)
	w.SetBlockWorld(at(16, 5, 5), block.Stone)

	m := Build(w, center, 1)
	assert.Equal(t, 0, m.Area[FacePosX], "Граница закрыта блоком соседнего чанка")
	assert.Equal(t, 5, m.Quads)

	alone := testWorld(t, false)
	alone.SetBlockWorld(at(15, 5, 5), block.Stone)
	m = Build(alone, center, 1)
	assert.Equal(t, 1, m.Area[FacePosX], "Незагруженный сосед считается воздухом")
}

func TestBuild_TransparentNeighbours(t *testing.T) {
	w := testWorld(t, true)
	w.SetBlockWorld(at(5, 5, 5), block.Glass)
	w.SetBlockWorld(at(6, 5, 5), block.Glass)

	m := Build(w, center, 1)
	assert.Equal(t, 1, m.Area[FacePosX], "Между стёклами грани нет")
	assert.Equal(t, 1, m.Area[FaceNegX])

	w.SetBlockWorld(at(6, 5, 5), block.Stone)
	m = Build(w, center, 1)
	assert.Equal(t, 1, m.Area[FacePosX], "Грань камня +X")
	assert.Equal(t, 2, m.Area[FaceNegX], "Грань стекла -X и грань камня к стеклу")
}

func TestBuild_NonSolidBlocksAreNotMeshed(t *testing.T) {
	w := testWorld(t, true)
	w.SetBlockWorld(at(5, 5, 5), block.Water)
	w.SetBlockWorld(at(7, 5, 5), block.Rose)

	m := Build(w, center, 1)
	assert.True(t, m.IsEmpty())
}

func TestBuild_Winding(t *testing.T) {
	w := testWorld(t, true)
	w.SetBlockWorld(at(5, 5, 5), block.Stone)

	m := Build(w, center, 1)
	require.Equal(t, 6, m.Quads)

	for i := 0; i < m.Quads; i++ {
		q := quadVertices(m, i)
		a := sub(q[1].Position, q[0].Position)
		b := sub(q[2].Position, q[0].Position)
		normal := cross(a, b)

		var centroid [3]float32
		for _, v := range q {
			for k := 0; k < 3; k++ {
				centroid[k] += v.Position[k] / 4
			}
		}
		outward := sub(centroid, [3]float32{5.5, 5.5, 5.5})
		assert.Greater(t, dot(normal, outward), float32(0), "прямоугольник %d обходится по часовой", i)
	}
}

func TestBuild_Textures(t *testing.T) {
	w := testWorld(t, true)
	w.SetBlockWorld(at(5, 5, 5), block.Grass)

	m := Build(w, center, 1)
	tex := block.Grass.Textures()

	for i := 0; i < m.Quads; i++ {
		q := quadVertices(m, i)
		switch {
		case q[0].Position[1] == 6 && q[2].Position[1] == 6:
			assert.Equal(t, tex.Top, q[0].Texture)
		case q[0].Position[1] == 5 && q[2].Position[1] == 5:
			assert.Equal(t, tex.Bottom, q[0].Texture)
		default:
			assert.Equal(t, tex.Side, q[0].Texture)
		}
	}
}

func TestBuild_AmbientOcclusion(t *testing.T) {
	w := testWorld(t, true)
	for z := 0; z < 16; z++ {
		for x := 0; x < 16; x++ {
			w.SetBlockWorld(at(x, 5, z), block.Stone)
		}
	}
	w.SetBlockWorld(at(8, 6, 8), block.Stone)

	m := Build(w, center, 1)

	occluded := false
	for _, v := range m.Vertices {
		assert.GreaterOrEqual(t, v.AO, float32(0))
		assert.LessOrEqual(t, v.AO, float32(1))
		if v.AO < 1 {
			occluded = true
		}
	}
	assert.True(t, occluded, "Пол вокруг блока затенён")
	assert.Equal(t, 16*16-1+1, m.Area[FacePosY], "Слияние с учётом AO сохраняет площадь")
}

func TestVertexAO(t *testing.T) {
	assert.Equal(t, uint8(3), vertexAO(false, false, false))
	assert.Equal(t, uint8(2), vertexAO(true, false, false))
	assert.Equal(t, uint8(2), vertexAO(false, false, true))
	assert.Equal(t, uint8(1), vertexAO(true, false, true))
	assert.Equal(t, uint8(0), vertexAO(true, true, false))
}

func TestBuild_LOD(t *testing.T) {
	w := testWorld(t, false)
	fillChunk(w, center, block.Stone)

	m := Build(w, center, 2)
	assert.Equal(t, 2, m.LOD)
	for f := Face(0); f < FaceCount; f++ {
		assert.Equal(t, 256, m.Area[f], "грань %s", f)
	}
	for _, v := range m.Vertices {
		assert.Equal(t, float32(1), v.AO, "LOD без затенения")
		for k := 0; k < 3; k++ {
			assert.LessOrEqual(t, v.Position[k], float32(16))
		}
	}

	// Одиночный блок на грубом уровне занимает целую ячейку
	single := testWorld(t, true)
	single.SetBlockWorld(at(5, 5, 5), block.Stone)
	m = Build(single, center, 4)
	assert.Equal(t, 16, m.Area[FacePosY])
	assert.Equal(t, 6, m.Quads)
}

func TestNormalizeStep(t *testing.T) {
	cases := map[int]int{-1: 1, 0: 1, 1: 1, 2: 2, 3: 2, 4: 4, 7: 4, 8: 8, 100: 8}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeStep(in), "шаг %d", in)
	}
}

func TestBuild_EmptyChunk(t *testing.T) {
	w := testWorld(t, true)
	m := Build(w, center, 1)
	assert.True(t, m.IsEmpty())
	assert.Empty(t, m.Vertices)
	assert.Equal(t, center.ChunkOrigin(), m.Origin())
}

func sub(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func cross(a, b [3]float32) [3]float32 {
	return [3]float32{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func dot(a, b [3]float32) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}
