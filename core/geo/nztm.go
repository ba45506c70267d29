package geo

import "math"

// NZTM2000 (EPSG:2193) projection parameters on the GRS80 ellipsoid.
// Network supply point coordinates are published as NZTM eastings and
// northings; region boundaries are WGS84, so generation and demand points
// have to be unprojected before the spatial join.
const (
	nztmA      = 6378137.0         // semi-major axis
	nztmF      = 1 / 298.257222101 // flattening
	nztmK0     = 0.9996            // central meridian scale
	nztmLon0   = 173.0             // origin longitude, degrees east
	nztmFalseE = 1600000.0
	nztmFalseN = 10000000.0
	nztmDegRad = math.Pi / 180
)

var (
	nztmE2  = nztmF * (2 - nztmF)   // first eccentricity squared
	nztmEp2 = nztmE2 / (1 - nztmE2) // second eccentricity squared
	nztmE1  = (1 - math.Sqrt(1-nztmE2)) / (1 + math.Sqrt(1-nztmE2))
)

func meridianArc(lat float64) float64 {
	e2 := nztmE2
	e4 := e2 * e2
	e6 := e4 * e2
	return nztmA * ((1-e2/4-3*e4/64-5*e6/256)*lat -
		(3*e2/8+3*e4/32+45*e6/1024)*math.Sin(2*lat) +
		(15*e4/256+45*e6/1024)*math.Sin(4*lat) -
		(35*e6/3072)*math.Sin(6*lat))
}

// NZTMToWGS84 converts an NZTM2000 easting/northing pair to a WGS84
// longitude/latitude point in degrees.
func NZTMToWGS84(easting, northing float64) Point {
	m := (northing - nztmFalseN) / nztmK0
	mu := m / (nztmA * (1 - nztmE2/4 - 3*nztmE2*nztmE2/64 - 5*nztmE2*nztmE2*nztmE2/256))

	e1 := nztmE1
	phi1 := mu +
		(3*e1/2-27*math.Pow(e1, 3)/32)*math.Sin(2*mu) +
		(21*e1*e1/16-55*math.Pow(e1, 4)/32)*math.Sin(4*mu) +
		(151*math.Pow(e1, 3)/96)*math.Sin(6*mu) +
		(1097*math.Pow(e1, 4)/512)*math.Sin(8*mu)

	sin1 := math.Sin(phi1)
	cos1 := math.Cos(phi1)
	tan1 := math.Tan(phi1)

	c1 := nztmEp2 * cos1 * cos1
	t1 := tan1 * tan1
	n1 := nztmA / math.Sqrt(1-nztmE2*sin1*sin1)
	r1 := nztmA * (1 - nztmE2) / math.Pow(1-nztmE2*sin1*sin1, 1.5)
	d := (easting - nztmFalseE) / (n1 * nztmK0)

	lat := phi1 - (n1*tan1/r1)*(d*d/2-
		(5+3*t1+10*c1-4*c1*c1-9*nztmEp2)*math.Pow(d, 4)/24+
		(61+90*t1+298*c1+45*t1*t1-252*nztmEp2-3*c1*c1)*math.Pow(d, 6)/720)
	lon := nztmLon0*nztmDegRad + (d-
		(1+2*t1+c1)*math.Pow(d, 3)/6+
		(5-2*c1+28*t1-3*c1*c1+8*nztmEp2+24*t1*t1)*math.Pow(d, 5)/120)/cos1

	return Point{X: lon / nztmDegRad, Y: lat / nztmDegRad}
}

// WGS84ToNZTM converts a WGS84 longitude/latitude point in degrees to an
// NZTM2000 easting/northing pair.
func WGS84ToNZTM(p Point) (easting, northing float64) {
	lat := p.Y * nztmDegRad
	lon := p.X * nztmDegRad

	sinLat := math.Sin(lat)
	cosLat := math.Cos(lat)
	tanLat := math.Tan(lat)

	n := nztmA / math.Sqrt(1-nztmE2*sinLat*sinLat)
	t := tanLat * tanLat
	c := nztmEp2 * cosLat * cosLat
	a := cosLat * (lon - nztmLon0*nztmDegRad)

	m := meridianArc(lat)

	easting = nztmFalseE + nztmK0*n*(a+
		(1-t+c)*math.Pow(a, 3)/6+
		(5-18*t+t*t+72*c-58*nztmEp2)*math.Pow(a, 5)/120)
	northing = nztmFalseN + nztmK0*(m+n*tanLat*(a*a/2+
		(5-t+9*c+4*c*c)*math.Pow(a, 4)/24+
		(61-58*t+t*t+600*c-330*nztmEp2)*math.Pow(a, 6)/720))
	return easting, northing
}
