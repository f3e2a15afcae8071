// Package apt implements the PackageManager capability for Debian-based
// hosts using dpkg-query for listing and manifests, dpkg --verify for file
// integrity, and the apt keyring for signature trust.
//
// Repository source trust is a transport check: a sources file is trusted
// only when every active line uses an encrypted transport.
package apt
