// Package metadata models the per-platform bundle metadata file (turnkey.xml).
//
// The file is a Java properties XML document holding three groups as an
// association list, one key per element:
//
//	<properties>
//	<comment>TurnKey Metadata File</comment>
//	<entry key="bundled-libraries.0">liba.so</entry>
//	<entry key="bundled-libraries.1">libb.so</entry>
//	<entry key="system-libraries.0">libsys.so</entry>
//	<entry key="load-commands.0">libb.so</entry>
//	<entry key="load-commands.1">liba.so</entry>
//	</properties>
//
// A group is read from index 0 upward and ends at the first missing index, so
// a gap silently truncates it. The same association list can be stored as a
// plain .properties file (see DecodeProperties), which packaging scripts tend
// to find easier to generate.
package metadata
